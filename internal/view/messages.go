package view

var catalog = map[string]string{
	"todo.created_successfully": "Todo created successfully!",
	"todo.updated_successfully": "Todo updated successfully!",
	"todo.title.blank":          "Title should not be blank.",
	"todo.title.too_long":       "Title is too long (255 characters maximum).",
	"todo.title.invalid":        "Title contains characters that cannot be stored.",

	"title.todo_list": "Todo list",
	"title.todo_new":  "New todo",
	"title.todo_edit": "Edit todo #%d",
	"todo.no_todos":   "No todos found.",
	"label.title":     "Title",
	"action.create":   "Create",
	"action.save":     "Save changes",
	"action.new_todo": "Create a new todo",
	"action.back":     "Back to the list",
	"action.edit":     "Edit",

	"error.unauthorized": "You need to sign in to access this page.",
	"error.forbidden":    "You are not allowed to access this page.",
	"error.not_found":    "The requested page could not be found.",
	"error.internal":     "Something went wrong on our side.",
}

// Translate returns the message for key, or key itself when unknown.
func Translate(key string) string {
	if msg, ok := catalog[key]; ok {
		return msg
	}
	return key
}
