package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"royalslots/internal/biz/slot"
	"royalslots/pkg/xgo"

	jsoniter "github.com/json-iterator/go"
)

type options struct {
	baseURL     string
	sessions    int
	spins       int
	concurrency int
	ids         []int64
}

type gameResult struct {
	gameID   int64
	spins    int64
	rejected int64
	bet      int64
	win      int64
	failed   int64
	elapsed  time.Duration
}

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8001", "")
	sessions := flag.Int("sessions", 10, "每个游戏打开的会话数")
	spins := flag.Int("spins", 20, "每个会话转动次数")
	concurrency := flag.Int("concurrency", 6, "")
	sim := flag.Int64("sim", 0, "离线模拟局数，>0 时不请求服务端")
	flag.Parse()

	if *sim > 0 {
		runSimulation(*sim)
		return
	}

	opts := options{
		baseURL:     strings.TrimRight(*baseURL, "/"),
		sessions:    *sessions,
		spins:       *spins,
		concurrency: max(*concurrency, 1),
	}
	client := &http.Client{Timeout: 30 * time.Second}

	ids, err := fetchGameIDs(client, opts.baseURL)
	if err != nil {
		fmt.Printf("fetch list games failed: %v\n", err)
		return
	}
	if len(ids) == 0 {
		fmt.Println("no game ids found")
		return
	}
	opts.ids = ids

	results := runConcurrent(client, opts)
	printResults(results)
}

func runSimulation(rounds int64) {
	start := time.Now()
	s := slot.Simulate(context.Background(), rounds, slot.DefaultBet, 0, uint64(start.UnixNano()))
	fmt.Printf("rounds=%d rtp=%.4f (theory %.4f) hit=%.2f%% max_win=%d cost=%s\n",
		s.Rounds, s.RTP(), slot.TheoreticalRTP(), s.HitRate()*100, s.MaxWin, xgo.ShortDuration(time.Since(start)))
	for _, sym := range slot.Symbols {
		fmt.Printf("  %s%s%s x%d\n", sym, sym, sym, s.Triples[sym])
	}
}

func fetchGameIDs(client *http.Client, baseURL string) ([]int64, error) {
	var reply struct {
		Games []struct {
			GameID int64 `json:"game_id"`
		} `json:"games"`
	}
	if err := doJSON(client, http.MethodGet, baseURL+"/v1/games", nil, &reply); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(reply.Games))
	for _, g := range reply.Games {
		ids = append(ids, g.GameID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func runConcurrent(client *http.Client, opts options) []*gameResult {
	type job struct {
		gameID int64
	}
	jobs := make(chan job)
	results := make(map[int64]*gameResult, len(opts.ids))
	for _, id := range opts.ids {
		results[id] = &gameResult{gameID: id}
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	start := time.Now()
	for i := 0; i < opts.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r := playSession(client, opts, j.gameID)
				mu.Lock()
				acc := results[j.gameID]
				acc.spins += r.spins
				acc.rejected += r.rejected
				acc.bet += r.bet
				acc.win += r.win
				acc.failed += r.failed
				mu.Unlock()
			}
		}()
	}
	for _, id := range opts.ids {
		for i := 0; i < opts.sessions; i++ {
			jobs <- job{gameID: id}
		}
	}
	close(jobs)
	wg.Wait()

	out := make([]*gameResult, 0, len(results))
	for _, id := range opts.ids {
		results[id].elapsed = time.Since(start)
		out = append(out, results[id])
	}
	return out
}

type sessionState struct {
	SessionID string `json:"session_id"`
	Bet       int64  `json:"bet"`
	LastWin   int64  `json:"last_win"`
	CanSpin   bool   `json:"can_spin"`
}

func playSession(client *http.Client, opts options, gameID int64) gameResult {
	res := gameResult{gameID: gameID}

	var opened struct {
		Session sessionState `json:"session"`
	}
	body := map[string]any{"game_id": gameID}
	if err := doJSON(client, http.MethodPost, opts.baseURL+"/v1/sessions", body, &opened); err != nil {
		fmt.Printf("[game=%d] open session failed: %v\n", gameID, err)
		res.failed++
		return res
	}
	base := opts.baseURL + "/v1/sessions/" + opened.Session.SessionID
	defer func() {
		_ = doJSON(client, http.MethodDelete, base, nil, nil)
	}()

	for i := 0; i < opts.spins; i++ {
		var reply struct {
			Accepted bool         `json:"accepted"`
			Session  sessionState `json:"session"`
		}
		if err := doJSON(client, http.MethodPost, base+"/spin", map[string]any{"wait": true}, &reply); err != nil {
			res.failed++
			continue
		}
		if !reply.Accepted {
			res.rejected++
			if !reply.Session.CanSpin {
				break
			}
			continue
		}
		res.spins++
		res.bet += reply.Session.Bet
		res.win += reply.Session.LastWin
	}
	return res
}

func doJSON(client *http.Client, method, url string, in, out any) error {
	var reader io.Reader
	if in != nil {
		b, err := jsoniter.Marshal(in)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return jsoniter.Unmarshal(data, out)
}

func printResults(results []*gameResult) {
	var total gameResult
	for _, r := range results {
		fmt.Printf("game=%d spins=%d rejected=%d failed=%d bet=%d win=%d rtp=%.2f%%\n",
			r.gameID, r.spins, r.rejected, r.failed, r.bet, r.win, xgo.Pct(r.win, r.bet))
		total.spins += r.spins
		total.bet += r.bet
		total.win += r.win
		total.failed += r.failed
		total.elapsed = r.elapsed
	}
	fmt.Printf("total spins=%d failed=%d rtp=%.2f%% cost=%s\n",
		total.spins, total.failed, xgo.Pct(total.win, total.bet), xgo.ShortDuration(total.elapsed))
}
