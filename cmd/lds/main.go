package main

import (
	"github.com/kglotfelty/lut-data-service/internal/app"
)

func main() {
	app.Run()
}
