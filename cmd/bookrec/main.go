package main

import "book-recommender/backend/internal/cli"

func main() {
	cli.Execute()
}
