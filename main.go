package main

import (
	"kyc.igtapps.io/infrastructure"
	"kyc.igtapps.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
