package main

import (
	"go.uber.org/fx"

	"github.com/mandikart/mandikart/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
