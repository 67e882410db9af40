package report

// reportTemplate is the complete HTML report. Everything is inlined so the
// artifact has no external references.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Smart Test Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; background: #f6f7f9; color: #1f2328; }
header { background: #24292f; color: #fff; padding: 16px 24px; }
header h1 { margin: 0; font-size: 18px; }
header .meta { color: #8b949e; font-size: 12px; margin-top: 4px; }
.cards { display: flex; flex-wrap: wrap; gap: 12px; padding: 16px 24px; }
.card { background: #fff; border: 1px solid #d0d7de; border-radius: 6px; padding: 10px 16px; min-width: 90px; }
.card .num { font-size: 22px; font-weight: 600; }
.card .label { font-size: 11px; color: #57606a; text-transform: uppercase; }
.card.failed .num { color: #cf222e; }
.card.passed .num { color: #1a7f37; }
.card.flaky .num { color: #9a6700; }
.card.slower .num { color: #bc4c00; }
main { padding: 0 24px 32px; }
.filters { margin: 8px 0 12px; }
.filters button { border: 1px solid #d0d7de; background: #fff; border-radius: 6px; padding: 4px 12px; margin-right: 6px; cursor: pointer; font-size: 12px; }
.filters button.active { background: #0969da; color: #fff; border-color: #0969da; }
table { width: 100%; border-collapse: collapse; background: #fff; border: 1px solid #d0d7de; border-radius: 6px; }
th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #d8dee4; font-size: 13px; }
th { background: #f6f8fa; font-size: 11px; text-transform: uppercase; color: #57606a; }
tr.failed td.status, tr.timedOut td.status { color: #cf222e; font-weight: 600; }
tr.passed td.status { color: #1a7f37; }
tr.skipped td.status, tr.interrupted td.status { color: #57606a; }
.badge { display: inline-block; border-radius: 10px; padding: 1px 8px; font-size: 11px; }
.badge.New { background: #ddf4ff; color: #0969da; }
.badge.Stable { background: #dafbe1; color: #1a7f37; }
.badge.Unstable { background: #fff8c5; color: #9a6700; }
.badge.Flaky { background: #ffebe9; color: #cf222e; }
details { margin-top: 6px; }
details summary { cursor: pointer; font-size: 12px; color: #0969da; }
pre { background: #f6f8fa; border-radius: 6px; padding: 8px; font-size: 12px; overflow-x: auto; white-space: pre-wrap; }
.suggestion { background: #ddf4ff; border-radius: 6px; padding: 8px; font-size: 12px; margin-top: 4px; }
</style>
</head>
<body>
<header>
<h1>Smart Test Report</h1>
<div class="meta">Generated {{.GeneratedAt}} · {{.Stats.Total}} tests in {{.Stats.Duration}}</div>
</header>
<div class="cards">
<div class="card passed"><div class="num">{{.Stats.Passed}}</div><div class="label">Passed</div></div>
<div class="card failed"><div class="num">{{.Stats.Failed}}</div><div class="label">Failed</div></div>
<div class="card"><div class="num">{{.Stats.Skipped}}</div><div class="label">Skipped</div></div>
<div class="card failed"><div class="num">{{.Stats.TimedOut}}</div><div class="label">Timed out</div></div>
<div class="card flaky"><div class="num">{{.Stats.Flaky}}</div><div class="label">Flaky</div></div>
<div class="card slower"><div class="num">{{.Stats.Slower}}</div><div class="label">Slower</div></div>
</div>
<main>
<div class="filters">
<button class="active" data-status="">All</button>
<button data-status="passed">Passed</button>
<button data-status="failed">Failed</button>
<button data-status="skipped">Skipped</button>
</div>
<table>
<thead>
<tr><th>Test</th><th>Status</th><th>Duration</th><th>Flakiness</th><th>Score</th><th>Trend</th></tr>
</thead>
<tbody>
{{range .Results}}
<tr class="{{.Status}}">
<td>
<div>{{.Title}}</div>
<div style="color:#57606a;font-size:11px">{{.File}}{{if .Retries}} · {{.Retries}} retries{{end}}</div>
{{if .Error}}
<details>
<summary>Error details</summary>
<pre>{{.Error}}{{if .Stack}}

{{.Stack}}{{end}}</pre>
{{if .Suggestion}}<div class="suggestion">&#128161; {{.Suggestion}}</div>{{end}}
</details>
{{end}}
</td>
<td class="status">{{.Status}}</td>
<td>{{ms .Duration}}</td>
<td><span class="badge {{.Signal.Flakiness}}">{{.Signal.Flakiness}}</span></td>
<td>{{percent .Signal.FlakinessScore}}</td>
<td>{{trendCell .Signal}}</td>
</tr>
{{end}}
</tbody>
</table>
</main>
<script>
document.querySelectorAll('.filters button').forEach(function (btn) {
  btn.addEventListener('click', function () {
    document.querySelectorAll('.filters button').forEach(function (b) { b.classList.remove('active'); });
    btn.classList.add('active');
    var status = btn.dataset.status;
    document.querySelectorAll('tbody tr').forEach(function (row) {
      row.style.display = (!status || row.classList.contains(status)) ? '' : 'none';
    });
  });
});
</script>
</body>
</html>
`
