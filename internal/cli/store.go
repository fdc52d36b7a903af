package cli

import (
	"github.com/spf13/cobra"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/config"
	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/store"
)

// newStore creates the universe store selected by the configuration.
func (c *CLI) newStore(cmd *cobra.Command) (store.Store, error) {
	switch c.Config.Store.Backend {
	case config.StoreBackendMongo:
		return store.NewMongoStore(cmd.Context(), store.MongoOptions{
			URI:        c.Config.Store.MongoURI,
			Database:   c.Config.Store.Database,
			Collection: c.Config.Store.Collection,
		})
	default:
		return store.NewMemoryStore(), nil
	}
}
