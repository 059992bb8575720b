package conf

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDurationUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		err  bool
	}{
		{`"100ms"`, 100 * time.Millisecond, false},
		{`"2s"`, 2 * time.Second, false},
		{`""`, 0, false},
		{`1000`, time.Microsecond, false},
		{`"abc"`, 0, true},
	}
	for _, c := range cases {
		var d Duration
		err := json.Unmarshal([]byte(c.in), &d)
		if (err != nil) != c.err {
			t.Errorf("%s: err = %v", c.in, err)
			continue
		}
		if !c.err && d.Std() != c.want {
			t.Errorf("%s: got %v, want %v", c.in, d.Std(), c.want)
		}
	}
}

func TestBootstrapScan(t *testing.T) {
	raw := `{"slot":{"initial_balance":5000,"tick_interval":"50ms","ticks":10},"notify":{"enabled":true,"webhook_url":"http://x"}}`
	var bc Bootstrap
	if err := json.Unmarshal([]byte(raw), &bc); err != nil {
		t.Fatal(err)
	}
	if bc.Slot.InitialBalance != 5000 || bc.Slot.TickInterval.Std() != 50*time.Millisecond || bc.Slot.Ticks != 10 {
		t.Errorf("slot = %+v", bc.Slot)
	}
	if bc.Slot.JackpotInterval.Or(2*time.Second) != 2*time.Second {
		t.Errorf("Or fallback broken")
	}
	if bc.Notify.GetWebhookUrl() != "http://x" {
		t.Errorf("notify = %+v", bc.Notify)
	}
	var nilData *Data
	if nilData.GetRedis() != nil {
		t.Errorf("nil getter")
	}
}
