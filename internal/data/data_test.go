package data

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"royalslots/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	_ "modernc.org/sqlite"
	"xorm.io/xorm"
)

func newLedgerRepo(t *testing.T) *dataRepo {
	t.Helper()
	db, err := xorm.NewEngine("sqlite", filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if err := db.Sync(new(Round)); err != nil {
		t.Fatalf("sync: %v", err)
	}
	return &dataRepo{data: &Data{db: db}, log: log.NewHelper(log.DefaultLogger)}
}

func TestRoundLedger(t *testing.T) {
	repo := newLedgerRepo(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	rounds := []*biz.Round{
		{SessionID: "s1", GameID: 1, Round: 2, Bet: 100, Win: 200, Balance: 10100, Reels: []string{"💎", "💎", "🔔"}, CreatedAt: now},
		{SessionID: "s1", GameID: 1, Round: 1, Bet: 100, Win: 0, Balance: 9900, Reels: []string{"👑", "💰", "🔔"}, CreatedAt: now},
		{SessionID: "s2", GameID: 2, Round: 1, Bet: 50, Win: 5000, Balance: 14950, Reels: []string{"7️⃣", "7️⃣", "7️⃣"}, CreatedAt: now},
	}
	for _, r := range rounds {
		if err := repo.SaveRound(ctx, r); err != nil {
			t.Fatalf("SaveRound: %v", err)
		}
	}

	got, err := repo.ListRounds(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Round != 1 || got[1].Round != 2 {
		t.Fatalf("ListRounds = %+v", got)
	}
	if strings.Join(got[1].Reels, "") != "💎💎🔔" {
		t.Errorf("reels = %v", got[1].Reels)
	}

	bet, win, n, err := repo.GetRoundAmounts(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if bet != 200 || win != 200 || n != 2 {
		t.Errorf("amounts = %d/%d/%d", bet, win, n)
	}
	if _, _, n, _ := repo.GetRoundAmounts(ctx, 99); n != 0 {
		t.Errorf("unknown game count = %d", n)
	}
}

func TestSessionIDFormat(t *testing.T) {
	if got := formatSessionID("20261017", 4, 12); got != "20261017-4-12" {
		t.Errorf("id = %s", got)
	}
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2026, 12, 31, 23, 59, 0, 0, loc)
	if m := nextMidnight(now); !m.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("midnight = %v", m)
	}
}

func TestUploadWithoutBucket(t *testing.T) {
	repo := &dataRepo{data: &Data{}, log: log.NewHelper(log.DefaultLogger)}
	if _, err := repo.UploadBytes(context.Background(), "", "k", "application/json", []byte("{}")); err == nil {
		t.Errorf("expected error without bucket")
	}
}
