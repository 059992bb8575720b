package chart

import (
	"fmt"
	"html/template"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const sampleMax = 5000 // 最大采样数

// Point 一局结算后的数据点
type Point struct {
	Round   int64
	Balance int64
	Win     int64
	Time    string
}

// Generate 生成会话余额曲线（plotly HTML）
func Generate(pts []Point, sessionID, gameName string) (string, error) {
	if len(pts) == 0 {
		return "", fmt.Errorf("no data")
	}
	pts = sample(pts)

	x := make([]int64, len(pts))
	balance := make([]int64, len(pts))
	win := make([]int64, len(pts))
	times := make([]string, len(pts))
	for i, p := range pts {
		x[i], balance[i], win[i], times[i] = p.Round, p.Balance, p.Win, p.Time
	}

	xJ, _ := jsoniter.Marshal(x)
	bJ, _ := jsoniter.Marshal(balance)
	wJ, _ := jsoniter.Marshal(win)
	tJ, _ := jsoniter.Marshal(times)

	var sb strings.Builder
	err := chartTpl.Execute(&sb, map[string]any{
		"Session": sessionID,
		"Game":    gameName,
		"X":       template.JS(xJ),
		"Balance": template.JS(bJ),
		"Win":     template.JS(wJ),
		"Time":    template.JS(tJ),
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// sample 等间距采样，保留首尾
func sample(pts []Point) []Point {
	n := len(pts)
	if n <= sampleMax {
		return pts
	}
	step := (n - 1) / (sampleMax - 1)
	if step < 1 {
		step = 1
	}
	out := make([]Point, 0, sampleMax)
	for i := 0; i < n && len(out) < sampleMax-1; i += step {
		out = append(out, pts[i])
	}
	return append(out, pts[n-1])
}

var chartTpl = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Game}} - {{.Session}}</title>
<script src="https://cdn.plot.ly/plotly-2.27.0.min.js"></script>
<style>body{font-family:sans-serif;margin:0;padding:20px;background:#1a1a1a;color:#f5d27a}.container{background:#262626;padding:20px;border-radius:8px}</style>
</head>
<body>
<div class="container"><h1>{{.Game}} / {{.Session}}</h1><div id="chart"></div></div>
<script>
var xData={{.X}},balance={{.Balance}},win={{.Win}},timeData={{.Time}};
var trace1={x:xData,y:balance,mode:'lines',name:'Balance',line:{color:'#f5d27a',width:2},customdata:timeData,hovertemplate:'#%{x}<br>%{y}<br>%{customdata}<extra></extra>'};
var trace2={x:xData,y:win,type:'bar',name:'Win',yaxis:'y2',marker:{color:'#7ad1f5'}};
var layout={xaxis:{title:'Round'},yaxis:{title:'Balance'},yaxis2:{title:'Win',overlaying:'y',side:'right'},
  plot_bgcolor:'#262626',paper_bgcolor:'#262626',font:{color:'#f5d27a'},height:700,width:1400,legend:{x:0.99,y:0.99,xanchor:'right'}};
Plotly.newPlot('chart',[trace1,trace2],layout,{displayModeBar:false});
</script>
</body>
</html>
`))
