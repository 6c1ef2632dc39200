package notify

import (
	"testing"
	"time"
)

func TestActiveExpires(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCenter(3 * time.Second)
	c.now = func() time.Time { return now }

	c.Success("Entry added!")
	now = now.Add(2 * time.Second)
	c.Error("Error: boom")

	got := c.Active()
	if len(got) != 2 || got[0].Level != LevelSuccess || got[1].Level != LevelError {
		t.Fatalf("Active() = %+v", got)
	}

	now = now.Add(1500 * time.Millisecond)
	got = c.Active()
	if len(got) != 1 || got[0].Message != "Error: boom" {
		t.Errorf("Active() after 3.5s = %+v", got)
	}
}

func TestListen(t *testing.T) {
	c := NewCenter(0)
	ch, stop := c.Listen()

	c.Success("Entry deleted!")
	select {
	case n := <-ch:
		if n.Message != "Entry deleted!" || n.ExpiresAt.Sub(n.CreatedAt) != DefaultTTL {
			t.Errorf("notification = %+v", n)
		}
	case <-time.After(time.Second):
		t.Fatal("listener got nothing")
	}

	stop()
	if _, ok := <-ch; ok {
		t.Error("channel still open after stop")
	}
	stop()
}

func TestClose(t *testing.T) {
	c := NewCenter(0)
	ch, stop := c.Listen()
	defer stop()

	c.Close()
	if _, ok := <-ch; ok {
		t.Error("listener not closed")
	}
	c.Success("late")
	if got := c.Active(); len(got) != 0 {
		t.Errorf("closed center kept %+v", got)
	}

	late, _ := c.Listen()
	if _, ok := <-late; ok {
		t.Error("Listen() after Close returned an open channel")
	}
}
