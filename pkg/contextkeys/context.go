package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// UserContextKey - ключ, по которому хранится имя участника из заголовка "user"
const UserContextKey = contextKey("user")

// UserHeader - заголовок, в котором клиент передает свое имя
const UserHeader = "user"
