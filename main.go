package main

import "github.com/dq-aem-sibaram/dq-timesheet/cmd"

func main() {
	cmd.Execute()
}
