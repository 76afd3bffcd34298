package main

import (
	"context"
	"fmt"

	"github.com/a-h/episodenotes"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(episodenotes.Version)
	return nil
}
