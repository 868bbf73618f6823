package web

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<style>
  body { font-family: sans-serif; margin: 2rem; }
  table { border-collapse: collapse; }
  td form { margin: 0; }
  td button { width: 4rem; height: 4rem; font-size: 2rem; }
  .alert { color: #b00020; }
  .result { color: #1b5e20; font-weight: bold; }
</style>
</head>
<body>
<h1>Tic-Tac-Toe</h1>
{{if .Error}}<p class="alert">{{.Error}}</p>{{end}}
{{if .Result}}<p class="result">{{if not .Over}}Last round: {{end}}{{.Result}}</p>{{end}}
{{if and .Player (not .Over)}}<p class="turn">{{.Player}}'s turn ({{.Mark}})</p>{{end}}
<table id="board">
{{range $r, $row := .Grid}}<tr>
{{range $c, $cell := $row}}  <td><form method="post" action="/move"><input type="hidden" name="row" value="{{$r}}"><input type="hidden" name="column" value="{{$c}}"><button type="submit"{{if or $cell $.Over}} disabled{{end}}>{{$cell}}</button></form></td>
{{end}}</tr>
{{end}}</table>
<script>
  // reload when the board changes in another tab; the first message is the state already shown
  (function () {
    var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
    var first = true;
    ws.onmessage = function () {
      if (first) { first = false; return; }
      location.reload();
    };
  })();
</script>
</body>
</html>
`))
