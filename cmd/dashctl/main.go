// Command dashctl обслуживает хранилище панели без запуска HTTP-сервера.
package main

import (
	"os"

	_ "github.com/lib/pq"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
