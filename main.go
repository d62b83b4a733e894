package main

import (
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
