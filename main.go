package main

import "github.com/David-HERS/HDF5-Data-Migrator/cmd"

func main() {
	cmd.Execute()
}
