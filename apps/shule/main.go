// Command shule is the terminal front-end of the school ERP: it signs in
// against the backend, keeps the session on disk and exposes the same
// permission-gated navigation the web client renders as a sidebar.
package main

import "os"

func main() {
	a, err := newApp()
	if err != nil {
		os.Exit(1)
	}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
