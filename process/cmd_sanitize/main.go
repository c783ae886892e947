package main

import "github.com/so637/personal-budget-tracker-backend/process/sanitize"

func main() {
	sanitize.Run()
}
