package cmd

func init() {
	rootCmd.AddCommand(newPersonaCommand(
		"oracle",
		"Get a second opinion from a deep-reasoning subagent",
		`Spawn the oracle persona: a deep-reasoning subagent consulted for
design reviews, tricky bug analysis, and second opinions. It reads the
working directory but never edits it.`,
	))
}
