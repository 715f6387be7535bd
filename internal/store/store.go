package store

import "context"

// Keys under which collections are persisted. The bundle key holds
// invoices, clients, products and the profile in one blob.
const (
	KeyClients   = "client_list"
	KeyProducts  = "product_list"
	KeyPurchases = "purchase_list"
	KeyBundle    = "app_store"
)

// Backend persists JSON blobs by key. Writes are last-write-wins.
type Backend interface {
	// Load returns found=false, without error, when the key was never saved.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}
