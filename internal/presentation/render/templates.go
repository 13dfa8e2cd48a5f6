package render

// chartPage is the full artifact: two Chart.js charts fed by embedded
// datasets, a stats row, and a chat pane. The x-axis toggles between log
// position (labeled with interpolated times) and wall-clock time.
const chartPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Context Window Usage - {{.SessionID}}</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.min.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chartjs-adapter-date-fns@3.0.0/dist/chartjs-adapter-date-fns.bundle.min.js"></script>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;background:linear-gradient(135deg,#0e1b4d 0%,#6b2bbf 60%,#a21caf 100%);color:#e5e7eb;font-size:13px;line-height:1.5;padding:20px;height:100vh;overflow:hidden}
.container{max-width:1800px;margin:0 auto}
.header{text-align:center;margin-bottom:16px;position:relative}
.header h1{font-size:24px;font-weight:700;color:#f0f6fc}
.header p{color:#9ca3af;font-size:13px}
.toggle{position:absolute;right:0;top:50%;transform:translateY(-50%);display:flex;gap:8px;align-items:center}
.toggle span{font-size:11px;color:#9ca3af;text-transform:uppercase;letter-spacing:.05em}
.toggle button{background:rgba(30,34,55,.7);border:1px solid rgba(156,163,175,.2);color:#e5e7eb;border-radius:12px;padding:4px 12px;cursor:pointer;font-size:12px}
.toggle button.active{background:#1f6feb;border-color:#1f6feb;color:#fff}
.stats{display:grid;grid-template-columns:repeat(auto-fit,minmax(110px,1fr));gap:10px;margin-bottom:16px}
.stat-card{background:rgba(20,24,45,.9);border-radius:10px;padding:10px 12px;box-shadow:0 6px 18px rgba(0,0,0,.35)}
.stat-card .lbl{font-size:10px;color:#9ca3af;letter-spacing:.08em;text-transform:uppercase;margin-bottom:2px}
.stat-card .val{font-size:18px;font-weight:700;color:#60a5fa}
.layout{display:grid;grid-template-columns:3fr 1fr;gap:16px;align-items:start}
.charts{display:flex;flex-direction:column;gap:16px;height:calc(100vh - 200px)}
.chart-section{background:rgba(20,24,45,.9);border-radius:10px;padding:16px;box-shadow:0 6px 18px rgba(0,0,0,.35);flex:1;display:flex;flex-direction:column}
.chart-section h3{font-size:14px;font-weight:600;text-align:center;margin-bottom:10px}
.chart-wrap{position:relative;flex:1}
.chat{background:rgba(20,24,45,.9);border-radius:10px;padding:14px;height:calc(100vh - 200px);overflow-y:auto;display:flex;flex-direction:column;gap:10px}
.chat h2{font-size:14px;font-weight:600;position:sticky;top:0;background:rgba(20,24,45,1);padding-bottom:8px;border-bottom:1px solid rgba(156,163,175,.2);z-index:5}
.card{background:rgba(30,34,55,.7);border:1px solid rgba(156,163,175,.2);border-radius:8px;padding:10px;cursor:pointer;transition:border-color .2s}
.card:hover{border-color:#60a5fa}
.card.selected{border:2px solid #fbbf24}
.card .hdr{display:flex;justify-content:space-between;font-size:10px;color:#9ca3af;text-transform:uppercase;letter-spacing:.05em;margin-bottom:6px}
.card .hdr .pos{color:#60a5fa}
.card .txt{font-size:13px;white-space:pre-wrap;word-wrap:break-word;margin-bottom:8px}
.card .ftr{display:flex;justify-content:space-between;font-size:11px;color:#9ca3af;border-top:1px solid rgba(156,163,175,.2);padding-top:6px}
.card .ftr .time{color:#60a5fa;font-family:Menlo,monospace}
@media(max-width:1200px){.layout{grid-template-columns:1fr}.chat{height:360px}}
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Context Window Usage</h1>
    <p>Session: {{.SessionID}}{{if .DateRange}} | {{.DateRange}}{{end}}</p>
    <div class="toggle">
      <span>x-axis</span>
      <button id="axisToggle" class="{{if not .TimeAxis}}active{{end}}" onclick="toggleAxis()">{{if .TimeAxis}}time{{else}}position{{end}}</button>
    </div>
  </div>

  <div class="stats">
    <div class="stat-card"><div class="lbl">Token Events</div><div class="val">{{fmtTokens .SnapshotCount}}</div></div>
    <div class="stat-card"><div class="lbl">User Turns</div><div class="val">{{fmtTokens .TurnCount}}</div></div>
    <div class="stat-card"><div class="lbl">Total Records</div><div class="val">{{fmtTokens .TotalRecords}}</div></div>
    <div class="stat-card"><div class="lbl">Final Context</div><div class="val">{{fmtTokens .FinalContext}}</div></div>
    <div class="stat-card"><div class="lbl">Total Tokens</div><div class="val">{{fmtTokens .FinalTotal}}</div></div>
    <div class="stat-card"><div class="lbl">Capacity</div><div class="val">{{fmtTokens .Capacity}}</div></div>
    <div class="stat-card"><div class="lbl">Usage</div><div class="val">{{fmtPercent .UsagePercent}}</div></div>
  </div>

  <div class="layout">
    <div class="charts">
      <div class="chart-section">
        <h3 id="contextTitle">Context Window Over Time</h3>
        <div class="chart-wrap"><canvas id="contextChart"></canvas></div>
      </div>
      <div class="chart-section">
        <h3 id="cumulativeTitle">Cumulative Total Tokens</h3>
        <div class="chart-wrap"><canvas id="cumulativeChart"></canvas></div>
      </div>
    </div>

    <div class="chat">
      <h2>User Messages</h2>
{{range .Cards}}      <div class="card" data-index="{{.Index}}" data-ts-ms="{{.TsMs}}" data-pos="{{.Position}}" onclick="selectTurn(this)">
        <div class="hdr"><span>Turn #{{.Index}} {{.Duration}}</span><span class="pos">record #{{.Position}}</span></div>
        <div class="txt">{{.Text}}</div>
        <div class="ftr"><span>Context: {{fmtTokens .Context}} ({{fmtTokens .Cumulative}}) | Cost: {{fmtTokens .Cost}}</span><span class="time">{{.Time}}</span></div>
      </div>
{{end}}    </div>
  </div>
</div>

<script>
const CONTEXT_TIME = {{.ContextTimeJSON}};
const CONTEXT_POS = {{.ContextPosJSON}};
const CUMULATIVE_TIME = {{.CumulativeTimeJSON}};
const CUMULATIVE_POS = {{.CumulativePosJSON}};
const TURNS_CONTEXT = {{.TurnsContextJSON}};
const TURNS_TOTAL = {{.TurnsTotalJSON}};
const POSITION_TIME = {{.PositionTimeJSON}};
const CAPACITY = {{.Capacity}};

let timeAxis = {{if .TimeAxis}}true{{else}}false{{end}};

function tickLabel(value) {
  const ts = POSITION_TIME[String(Math.round(value))];
  if (!ts) return '';
  return new Date(ts).toLocaleTimeString('en-US', {hour: '2-digit', minute: '2-digit', hour12: false});
}

function xScale() {
  if (timeAxis) {
    return {
      type: 'time',
      time: {unit: 'minute', displayFormats: {minute: 'HH:mm', hour: 'HH:mm'}},
      ticks: {color: '#9ca3af'},
      grid: {color: 'rgba(156,163,175,0.1)'}
    };
  }
  return {
    type: 'linear',
    ticks: {color: '#9ca3af', maxTicksLimit: 20, autoSkip: true, callback: tickLabel},
    grid: {color: 'rgba(156,163,175,0.1)'}
  };
}

function retarget(points) {
  return points.map(p => Object.assign({}, p, {x: timeAxis ? p.xTime : p.xPos}));
}

function capacityLine(data) {
  if (data.length === 0) return [];
  return [{x: data[0].x, y: CAPACITY}, {x: data[data.length - 1].x, y: CAPACITY}];
}

const turnTooltip = {
  title(items) {
    const raw = items[0].raw;
    if (raw.index !== undefined) return 'Turn #' + raw.index + ' (record #' + raw.position + ')';
    return '';
  },
  label(item) {
    const raw = item.raw;
    if (raw.index !== undefined) {
      return [raw.message.slice(0, 120), 'Cost: ' + raw.cost.toLocaleString() + ' tokens ' + raw.duration];
    }
    return item.dataset.label + ': ' + item.parsed.y.toLocaleString();
  }
};

function makeChart(canvasId, lineLabel, lineData, turnData, withCapacity, color) {
  const datasets = [
    {label: lineLabel, data: lineData, parsing: false, borderColor: color, backgroundColor: color + '26',
     tension: 0.3, pointRadius: 0, borderWidth: 2, fill: true, order: 2},
    {label: 'User Turns', data: turnData, parsing: false, type: 'scatter', backgroundColor: '#fbbf24',
     borderColor: '#f59e0b', borderWidth: 2, pointRadius: 7, pointStyle: 'star', order: 1}
  ];
  if (withCapacity) {
    datasets.push({label: 'Context Capacity', data: capacityLine(lineData), parsing: false,
      borderColor: '#ef4444', borderWidth: 2, borderDash: [10, 5], pointRadius: 0, fill: false, order: 3});
  }
  return new Chart(document.getElementById(canvasId), {
    type: 'line',
    data: {datasets: datasets},
    options: {
      responsive: true, maintainAspectRatio: false,
      interaction: {mode: 'nearest', intersect: true},
      scales: {
        x: xScale(),
        y: {beginAtZero: true, ticks: {color: '#9ca3af', callback: v => v.toLocaleString()},
            grid: {color: 'rgba(156,163,175,0.1)'}}
      },
      plugins: {
        legend: {position: 'top', labels: {color: '#e5e7eb', font: {size: 11}}},
        tooltip: {backgroundColor: 'rgba(20,24,45,0.95)', borderColor: color, borderWidth: 1,
                  displayColors: false, callbacks: turnTooltip}
      },
      onClick(event, elements) {
        if (elements.length > 0 && elements[0].datasetIndex === 1) {
          const raw = datasets[1].data[elements[0].index];
          const card = document.querySelector('.card[data-index="' + raw.index + '"]');
          if (card) {
            card.scrollIntoView({behavior: 'smooth', block: 'center'});
            setTimeout(() => selectTurn(card), 300);
          }
        }
      }
    }
  });
}

const contextChart = makeChart('contextChart',
  'Context Window Tokens', timeAxis ? CONTEXT_TIME : CONTEXT_POS, retarget(TURNS_CONTEXT), true, '#60a5fa');
const cumulativeChart = makeChart('cumulativeChart',
  'Cumulative Total Tokens', timeAxis ? CUMULATIVE_TIME : CUMULATIVE_POS, retarget(TURNS_TOTAL), false, '#8b5cf6');

function toggleAxis() {
  timeAxis = !timeAxis;
  const btn = document.getElementById('axisToggle');
  btn.textContent = timeAxis ? 'time' : 'position';
  btn.classList.toggle('active', !timeAxis);

  const ctxData = timeAxis ? CONTEXT_TIME : CONTEXT_POS;
  contextChart.data.datasets[0].data = ctxData;
  contextChart.data.datasets[1].data = retarget(TURNS_CONTEXT);
  contextChart.data.datasets[2].data = capacityLine(ctxData);
  contextChart.options.scales.x = xScale();
  contextChart.update('none');

  cumulativeChart.data.datasets[0].data = timeAxis ? CUMULATIVE_TIME : CUMULATIVE_POS;
  cumulativeChart.data.datasets[1].data = retarget(TURNS_TOTAL);
  cumulativeChart.options.scales.x = xScale();
  cumulativeChart.update('none');
}

function selectTurn(card) {
  document.querySelectorAll('.card').forEach(c => c.classList.remove('selected'));
  card.classList.add('selected');
}
</script>
</body>
</html>
`
