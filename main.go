package main

import (
	"github.com/chrisdamba/menuprofit/cmd"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
