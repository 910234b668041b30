package pi

// Event type discriminators emitted by the pi CLI in --mode json. Every
// other type is ignored.
const (
	eventMessageEnd       = "message_end"
	eventToolExecutionEnd = "tool_execution_end"
)

// Content block discriminators inside a message.
const (
	blockText     = "text"
	blockToolCall = "toolCall"
)

const roleAssistant = "assistant"

// streamEvent is one newline-delimited JSON object from the child's stdout.
// The stream is best-effort structured: fields may be absent and unknown
// event types are expected.
type streamEvent struct {
	Type    string   `json:"type"`
	Message *message `json:"message"`
}

type message struct {
	Role    string         `json:"role"`
	Model   string         `json:"model"`
	Content []contentBlock `json:"content"`
	Usage   *usageRecord   `json:"usage"`
}

type contentBlock struct {
	Type      string         `json:"type"`
	Text      string         `json:"text"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// usageRecord mirrors the per-turn usage object. Absent fields decode to
// zero, which is exactly the contribution they should make to the totals.
type usageRecord struct {
	Input       int       `json:"input"`
	Output      int       `json:"output"`
	CacheRead   int       `json:"cacheRead"`
	CacheWrite  int       `json:"cacheWrite"`
	TotalTokens int       `json:"totalTokens"`
	Cost        costBlock `json:"cost"`
}

type costBlock struct {
	Total float64 `json:"total"`
}
