package slot

import "testing"

func TestNewStateDefaults(t *testing.T) {
	s := NewState(DefaultBalance, 7)
	if s.Bet != DefaultBet {
		t.Errorf("invalid bet not replaced: %d", s.Bet)
	}
	if !s.Outcome.IsEmpty() || s.Spinning || s.LastWin != 0 {
		t.Errorf("unexpected initial state: %+v", s)
	}
	if NewState(-5, 100).Balance != 0 {
		t.Errorf("negative balance not clamped")
	}
}

func TestTransitions(t *testing.T) {
	s := NewState(100, 100)
	s, ok := s.begin()
	if !ok || s.Balance != 0 || !s.Spinning {
		t.Fatalf("begin: ok=%v %+v", ok, s)
	}
	if _, ok := s.begin(); ok {
		t.Fatalf("begin accepted while spinning")
	}
	s = s.tick(Outcome{Crown, Bell, Star})
	if s.Frame != 1 || s.Balance != 0 {
		t.Fatalf("tick changed money: %+v", s)
	}
	s, win := s.settle(Outcome{Crown, Crown, Star})
	if win != 200 || s.Balance != 200 || s.Spinning || s.Spins != 1 {
		t.Fatalf("settle: win=%d %+v", win, s)
	}
	// 余额不足
	s.Balance = 50
	if _, ok := s.begin(); ok {
		t.Fatalf("begin accepted with balance < bet")
	}
}
