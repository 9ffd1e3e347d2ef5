// File: cmd/service/main.go
// @title        Travel Registrations API
// @version      1.0
// @description  旅客報名表單與管理後台 API
// @host         localhost:3000
// @BasePath     /api
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name travel_admin_session
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
