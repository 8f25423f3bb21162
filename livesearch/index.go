package livesearch

import (
	"html/template"
	"net/http"

	"github.com/Masterminds/sprig/v3"
)

var indexTemplate = template.Must(template.New("index").Funcs(sprig.FuncMap()).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title | default "Word Autocomplete" }}</title>
</head>
<body data-config="{{ dict "endpoint" .Endpoint "limit" .Limit | toJson }}">
<h1>{{ .Title | default "Word Autocomplete" }}</h1>
<p>{{ .Words }} {{ if eq .Words 1 }}word{{ else }}words{{ end }} in the dictionary, up to {{ .Limit }} suggestions per query.</p>
<input id="text" type="text" autocomplete="off" autofocus>
<ul id="results"></ul>
<script>
const config = JSON.parse(document.body.dataset.config);
const input = document.getElementById("text");
const results = document.getElementById("results");
input.addEventListener("input", async () => {
  const body = new URLSearchParams({text: input.value, limit: String(config.limit)});
  const resp = await fetch(config.endpoint, {method: "POST", body: body});
  const words = await resp.json();
  results.replaceChildren(...words.map(w => {
    const li = document.createElement("li");
    li.textContent = w;
    return li;
  }));
});
</script>
</body>
</html>
`))

type indexData struct {
	Title    string
	Endpoint string
	Words    int
	Limit    int
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, indexData{
		Title:    s.opts.Title,
		Endpoint: searchPath,
		Words:    s.store.NumWords(),
		Limit:    s.opts.DefaultLimit,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Rendering index")
	}
}
