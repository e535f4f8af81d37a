package main

import "github.com/Riyasinha-01/Voyage/cmd"

// @title                      Voyage API
// @version                    1.0
// @description                Structures travel-assistant replies, extracts destinations and resolves their images.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cmd.Execute()
}
