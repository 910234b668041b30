package cmd

func init() {
	rootCmd.AddCommand(newPersonaCommand(
		"librarian",
		"Research a codebase with a read-only subagent",
		`Spawn the librarian persona: a read-only research subagent that digs
through the working directory and reports back. Use it to answer "where
is X handled" or "how does Y work" questions without burning your own
context on the search.`,
	))
}
