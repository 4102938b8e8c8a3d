package main

import "github.com/khabaroff/admin-auth/cmd"

func main() {
	cmd.Execute()
}
