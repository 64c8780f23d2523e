package main

import (
	"github.com/airenas/interviewcoach/internal/app/processor"
	"github.com/labstack/gommon/color"
)

func main() {
	printBanner()
	processor.Execute()
}

var version string

func printBanner() {
	banner := `
    _       __                  _                
   (_)___  / /____  ______   __(_)__ _      __   
  / / __ \/ __/ _ \/ ___/ | / / / _ \ | /| / /   
 / / / / / /_/  __/ /   | |/ / /  __/ |/ |/ /    
/_/_/ /_/\__/\___/_/    |___/_/\___/|__/|__/     
   ____  _________  ________  ______________  _____
  / __ \/ ___/ __ \/ ___/ _ \/ ___/ ___/ __ \/ ___/
 / /_/ / /  / /_/ / /__/  __(__  |__  ) /_/ / /    
/ .___/_/   \____/\___/\___/____/____/\____/_/     | v: %s
/_/

%s
________________________________________________________                                                 

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("github.com/airenas/interviewcoach"))
}
