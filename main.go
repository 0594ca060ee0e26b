package main

import "github.com/assetdesk/asset-management/cmd"

func main() {
	cmd.Execute()
}
