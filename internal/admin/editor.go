package admin

// EditorState tags what an admin panel is currently doing. The zero
// value is EditorIdle.
type EditorState string

const (
	EditorIdle     EditorState = "idle"
	EditorCreating EditorState = "creating"
	EditorEditing  EditorState = "editing"
)
