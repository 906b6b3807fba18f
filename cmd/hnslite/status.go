package main

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/rs/cors"

	"github.com/ethereum/go-ethereum/log"

	"github.com/hnslite/hnslite/core"
)

type statusReply struct {
	Network  string `json:"network"`
	Height   uint32 `json:"height"`
	Tip      string `json:"tip"`
	Synced   bool   `json:"synced"`
	SafeRoot string `json:"safeRoot"`
}

// startStatusServer exposes a read-only JSON summary of the chain state.
// Callers must guarantee no Add is in flight while requests are served; the
// import path runs before the listener comes up.
func startStatusServer(chain *core.HeaderChain, addr string) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		reply := statusReply{
			Network:  chain.Config().Name,
			Height:   chain.Height(),
			Tip:      chain.Tip().Hash().Hex(),
			Synced:   chain.Synced(),
			SafeRoot: chain.SafeRoot().Hex(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&reply)
	})

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: cors.Default().Handler(mux)}
	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			log.Error("Status server failed", "err", err)
		}
	}()
	log.Info("Status endpoint opened", "url", "http://"+listener.Addr().String()+"/status")
	return srv, nil
}
