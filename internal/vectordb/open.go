package vectordb

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Open builds a Store for the given backend ("qdrant" or "memory") and
// returns it with a close function for the underlying connection. The close
// function is never nil.
func Open(ctx context.Context, backend, address, collection string, dimension int) (Store, func(), error) {
	switch backend {
	case "memory":
		return NewMemoryStore(), func() {}, nil
	case "qdrant":
		addr := strings.TrimPrefix(address, "http://")
		addr = strings.TrimPrefix(addr, "https://")
		addr = strings.TrimSpace(addr)

		log.Printf("vectordb.Open: connecting to Qdrant at %s", addr)
		conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
		}

		store, err := NewQdrantStore(ctx, conn, collection, dimension)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				log.Printf("vectordb: error closing Qdrant connection: %v", err)
			}
		}
		return store, closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown vectordb backend %q, valid backends: qdrant, memory", backend)
	}
}
