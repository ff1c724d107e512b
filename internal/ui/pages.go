// Package ui renders the minimal server-side HTML pages: the two sign-in
// forms and the authenticated landing pages.
package ui

import (
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Render writes a page to the response with the given status.
func Render(w http.ResponseWriter, status int, node Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// LoginForm parameterises the shared sign-in page.
type LoginForm struct {
	Title  string
	Action string
	Next   string // preserved destination, posted back as a hidden field
	Error  string
}

// LoginPage renders a sign-in form posting email and password to f.Action.
func LoginPage(f LoginForm) Node {
	content := []Node{
		H1(Text(f.Title)),
		Form(
			Method("post"),
			Action(f.Action),
			Class("login-form"),
			Label(Text("Email")),
			Input(
				Type("email"),
				Name("email"),
				Placeholder("you@example.com"),
				Required(),
			),
			Label(Text("Password")),
			Input(
				Type("password"),
				Name("password"),
				Required(),
			),
			If(f.Next != "",
				Input(Type("hidden"), Name("next"), Value(f.Next)),
			),
			Button(
				Type("submit"),
				Class("btn btn-primary"),
				Text("Sign In"),
			),
		),
	}
	if f.Error != "" {
		content = append([]Node{P(Class("error"), Text(f.Error))}, content...)
	}

	return layout(f.Title, Main(Class("login-wrap"), Group(content)))
}

// LandingPage renders a bare authenticated page with a title and a line
// of session detail.
func LandingPage(title, subtitle string) Node {
	return layout(title, Main(
		Class("landing-wrap"),
		H1(Text(title)),
		P(Text(subtitle)),
	))
}

func layout(title string, body Node) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Back office")),
			Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
		),
		Body(body),
	)
}
