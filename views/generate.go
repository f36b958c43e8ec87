// Package views holds the templ components for the HTML pages.
package views

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate
