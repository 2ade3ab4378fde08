// @title           chatroom API
// @version         1.0
// @description     Чат-комната: участники, сообщения, живая лента.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /

package main

import "chatroom_backend/internal/app"

func main() {
	app.Run()
}
