package controller

import (
	"fmt"
	"io"

	"github.com/planewm/planewm/internal/snapshot"
)

// Snapshot persists and restores named workspace trees. "save" serializes the
// active tree into the snapshot store, "load" deserializes it back, "list"
// writes the stored names and "delete" removes one.
func (c *Controller) Snapshot(args []string, out io.Writer) error {
	store, err := snapshot.NewStore()
	if err != nil {
		return err
	}

	switch arg(args, 0) {
	case "save":
		path, err := store.Path(arg(args, 1))
		if err != nil {
			return err
		}
		if err := store.Ensure(); err != nil {
			return err
		}
		return c.SerializeTree(path)
	case "load":
		path, err := store.Path(arg(args, 1))
		if err != nil {
			return err
		}
		return c.DeserializeTree(path)
	case "list":
		names, err := store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(out, "?")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	case "delete":
		return store.Delete(arg(args, 1))
	default:
		return fmt.Errorf("snapshot: unknown operation %q (expected: save, load, list, delete)", arg(args, 0))
	}
}
