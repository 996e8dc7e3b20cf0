package arbiter

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/signalyard/internal/command"
	apperrors "github.com/louisbranch/signalyard/internal/errors"
)

func startServer(t *testing.T, cfg Config) string {
	t.Helper()
	cfg.Addr = "127.0.0.1:0"
	server, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Serve(ctx); err != nil {
			t.Errorf("serve: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return server.Addr()
}

func TestServerEndToEnd(t *testing.T) {
	addr := startServer(t, Config{WorldSide: 64})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := DialClient(ctx, addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	r, err := client.Submit(ctx, command.FoundTown, 100,
		&command.Tuple[command.FoundTownData]{V: command.FoundTownData{Size: 1, Name: "Slade Falls"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !r.Succeeded || r.Tile != 100 {
		t.Fatalf("result = %+v", r)
	}

	// A handler failure still travels back as a result, not an RPC error.
	r, err = client.Submit(ctx, command.FoundTown, 3000,
		&command.Tuple[command.FoundTownData]{V: command.FoundTownData{Size: 1, Name: "Slade Falls"}})
	if err != nil {
		t.Fatalf("submit duplicate: %v", err)
	}
	if r.Succeeded || r.Message != apperrors.CodeTownNameTaken {
		t.Fatalf("result = %+v", r)
	}

	// Estimates do not change the world, so the same estimate repeats.
	for i := 0; i < 2; i++ {
		r, err = client.Estimate(ctx, command.BuildRailTrack, 10,
			&command.Tuple[command.BuildRailTrackData]{V: command.BuildRailTrackData{Track: 1}})
		if err != nil {
			t.Fatalf("estimate: %v", err)
		}
		if !r.Succeeded || r.Cost == 0 {
			t.Fatalf("estimate = %+v", r)
		}
	}
}

func TestServerRequiresGrantWhenConfigured(t *testing.T) {
	pub, priv := grantKeyPair(t)
	now := time.Now().UTC()
	addr := startServer(t, Config{WorldSide: 64, Grant: testGrantConfig(pub, now)})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	anon, err := DialClient(ctx, addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer anon.Close()

	payload := &command.Tuple[command.BuildRailTrackData]{V: command.BuildRailTrackData{Track: 1}}
	if _, err := anon.Submit(ctx, command.BuildRailTrack, 3, payload); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("anonymous submit: %v", err)
	}

	claims := baseClaims(now)
	claims.CompanyID = 1
	granted, err := DialClient(ctx, addr, WithGrant(signGrant(t, priv, claims)))
	if err != nil {
		t.Fatalf("dial with grant: %v", err)
	}
	defer granted.Close()

	r, err := granted.Submit(ctx, command.BuildRailTrack, 3, payload)
	if err != nil {
		t.Fatalf("granted submit: %v", err)
	}
	if !r.Succeeded {
		t.Fatalf("result = %+v", r)
	}
}
