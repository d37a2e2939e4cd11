// cmd/main.go
package main

import (
	"go-game-api/app"
)

// @title           Go-Game API
// @version         1.0
// @description     User-account and session backend for a web word game.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
