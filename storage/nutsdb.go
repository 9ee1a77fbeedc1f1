/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package storage

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/nutsdb/nutsdb"

	"github.com/sabouaram/netcore/conid"
)

const bucket = "netcore-messages"

// NutsDB appends every message to an embedded nutsdb database, one
// key-value entry per message, keyed by the owning connection's identity
// and a per-connection sequence number so GetAllForConn replays a
// connection's history in the order it was recorded.
type NutsDB struct {
	db  *nutsdb.DB
	seq sync.Map // conid.ConId.String() -> *uint64
}

// OpenNutsDB opens (creating if absent) an embedded database rooted at
// dir and registers the bucket NutsDB writes into.
func OpenNutsDB(dir string) (*NutsDB, error) {
	db, err := nutsdb.Open(nutsdb.DefaultOptions, nutsdb.WithDir(dir))
	if err != nil {
		return nil, fmt.Errorf("netcore/storage: open nutsdb at %q: %w", dir, err)
	}

	err = db.Update(func(tx *nutsdb.Tx) error {
		e := tx.NewBucket(nutsdb.DataStructureBTree, bucket)
		if e != nil && !errors.Is(e, nutsdb.ErrBucketAlreadyExist) {
			return e
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("netcore/storage: create bucket %q: %w", bucket, err)
	}

	return &NutsDB{db: db}, nil
}

func (n *NutsDB) nextSeq(id conid.ConId) uint64 {
	name := id.String()
	v, _ := n.seq.LoadOrStore(name, new(uint64))
	counter := v.(*uint64)
	return atomic.AddUint64(counter, 1)
}

// OnMessage persists payload under a key derived from id and a
// monotonically increasing per-connection sequence number, so an
// embedder can later range over a connection's entries in recv/send
// order with GetAllForConn.
func (n *NutsDB) OnMessage(id conid.ConId, dir Direction, payload []byte) error {
	key := fmt.Sprintf("%s|%020d|%s", id.String(), n.nextSeq(id), dir)

	body := make([]byte, len(payload))
	copy(body, payload)

	return n.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(bucket, []byte(key), body, 0)
	})
}

// Record is one entry returned by GetAllForConn.
type Record struct {
	Key     string
	Payload []byte
}

// GetAllForConn returns every message recorded for id, in the order
// OnMessage wrote them.
func (n *NutsDB) GetAllForConn(id conid.ConId) ([]Record, error) {
	prefix := []byte(id.String() + "|")
	var out []Record

	err := n.db.View(func(tx *nutsdb.Tx) error {
		entries, _, err := tx.PrefixScan(bucket, prefix, 0, 1<<20)
		if err != nil {
			if errors.Is(err, nutsdb.ErrBucketEmpty) || errors.Is(err, nutsdb.ErrNotFoundKey) {
				return nil
			}
			return err
		}
		for _, e := range entries {
			out = append(out, Record{Key: string(e.Key), Payload: append([]byte(nil), e.Value...)})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("netcore/storage: scan connection %q: %w", id.String(), err)
	}
	return out, nil
}

func (n *NutsDB) Close() error {
	return n.db.Close()
}

func (n *NutsDB) String() string { return "NutsDBStorage<" + bucket + ">" }
