package handler

import "html/template"

// loginPage is the only HTML the dashboard serves.
var loginPage = template.Must(template.New("login").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Gari Mobility · Admin</title>
</head>
<body>
<main>
<h1>Admin sign in</h1>
{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
<form method="post" action="/login">
<input type="hidden" name="from" value="{{.From}}">
<label>Email <input type="email" name="email" value="{{.Email}}" required></label>
<label>Password <input type="password" name="password" required></label>
<label><input type="checkbox" name="remember" value="true"> Remember me</label>
<button type="submit">Sign in</button>
</form>
</main>
</body>
</html>
`))

type loginView struct {
	Error string
	Email string
	From  string
}
