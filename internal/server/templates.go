package server

import (
	"html/template"
)

const indexTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
    <title>webstore</title>
  </head>
  <body>
    <h1>webstore</h1>
    <table>
      <tr><th>Method</th><th>Path</th><th>Effect</th></tr>
      <tr><td>PUT</td><td>/{path}</td><td>create or replace a file (201 / 200)</td></tr>
      <tr><td>GET</td><td>/{path}</td><td>read a file or list a directory</td></tr>
      <tr><td>HEAD</td><td>/{path}</td><td>file size and modification time</td></tr>
      <tr><td>DELETE</td><td>/{path}</td><td>remove a file or directory tree (204)</td></tr>
      <tr><td>GET</td><td>/download/{path}</td><td>download a file as an attachment</td></tr>
    </table>
    <h2>Upload</h2>
    <form id="upload">
      <input type="text" id="target" placeholder="docs/report.pdf">
      <input type="file" id="file">
      <button type="submit">Upload</button>
    </form>
    <p id="status"></p>
    <p><a href="/.">Browse storage root</a></p>
    <script>
      document.getElementById("upload").addEventListener("submit", function (event) {
        event.preventDefault();
        var file = document.getElementById("file").files[0];
        var target = document.getElementById("target").value || (file && file.name);
        if (!file || !target) {
          return;
        }
        while (target.charAt(0) === "/") {
          target = target.slice(1);
        }
        fetch("/" + target, { method: "PUT", body: file }).then(function (resp) {
          document.getElementById("status").textContent = resp.status + " " + resp.statusText;
        });
      });
    </script>
  </body>
</html>`

const listingTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
    <title>Directory contents: {{.Path}}</title>
  </head>
  <body>
    <h1>Directory contents: {{.Path}}</h1>
    <ul>
      {{range .Entries}}
        {{if .IsDir}}
          <li><a href="{{.Href}}">{{.Name}}</a> ({{.Type}})</li>
        {{else}}
          <li><a href="{{.Href}}">{{.Name}}</a> ({{.Type}}, {{.Size}}) <a href="{{.DownloadHref}}">download</a></li>
        {{end}}
      {{end}}
    </ul>
  </body>
</html>`

type listingPageData struct {
	Path    string
	Entries []entryView
}

type entryView struct {
	Name         string
	Type         string
	IsDir        bool
	Href         string
	DownloadHref string
	Size         string
}

func newTemplates() (*template.Template, error) {
	templates, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, err
	}

	if _, err := templates.New("listing").Parse(listingTemplate); err != nil {
		return nil, err
	}

	return templates, nil
}
