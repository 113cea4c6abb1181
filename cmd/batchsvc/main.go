package main

import "github.com/hydra-janus/batch-service/cmd/batchsvc/cmd"

func main() {
	cmd.Execute()
}
