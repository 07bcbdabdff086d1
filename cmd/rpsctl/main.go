package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"rps-master/internal/client"
	"rps-master/internal/constants"
)

var errUsage = errors.New("usage")

const usage = `usage: rpsctl [flags] <command> [args]

commands:
  new <name>       create a player and print its id
  profile          show stats, level and cosmetics
  play <move>      throw rock, paper or scissors
  shop             list cosmetics and tiers
  buy <id>         purchase a cosmetic
  select <id>      equip an unlocked cosmetic
  rounds           show recent rounds
  reset            wipe progress (the round log is kept)
  export <file>    write a save file
  import <file>    load a save file

flags:
`

type options struct {
	server string
	player string
	limit  int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, styles.lose.Render("error: "+err.Error()))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("rpsctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.server, "server", envOr("RPS_SERVER", "http://localhost:8080"), "game server base URL (env RPS_SERVER)")
	fs.StringVar(&opts.player, "player", os.Getenv("RPS_PLAYER"), "player id (env RPS_PLAYER)")
	fs.IntVar(&opts.limit, "n", constants.DefaultRoundsLimit, "number of rounds to show")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	c := client.New(opts.server)
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	if cmd == "new" {
		if len(rest) != 1 {
			return fmt.Errorf("new takes exactly one name")
		}
		p, err := c.CreatePlayer(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderProfile(p))
		fmt.Fprintln(stdout, styles.muted.Render("export RPS_PLAYER="+p.PlayerID))
		return nil
	}

	if opts.player == "" {
		return fmt.Errorf("no player: pass -player or set RPS_PLAYER")
	}

	switch cmd {
	case "profile":
		p, err := c.GetProfile(ctx, opts.player)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderProfile(p))

	case "play":
		if len(rest) != 1 {
			return fmt.Errorf("play takes one move: rock, paper or scissors")
		}
		res, err := c.PlayRound(ctx, opts.player, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderRound(res))

	case "shop":
		cat, err := c.GetCatalog(ctx)
		if err != nil {
			return err
		}
		p, err := c.GetProfile(ctx, opts.player)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderShop(cat, p))

	case "buy", "select":
		if len(rest) != 1 {
			return fmt.Errorf("%s takes one cosmetic id", cmd)
		}
		call := c.Purchase
		if cmd == "select" {
			call = c.SelectCosmetic
		}
		p, err := call(ctx, opts.player, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderProfile(p))

	case "rounds":
		list, err := c.ListRounds(ctx, opts.player, opts.limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderRounds(list))

	case "reset":
		p, err := c.Reset(ctx, opts.player)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderProfile(p))

	case "export":
		if len(rest) != 1 {
			return fmt.Errorf("export takes a file name")
		}
		data, err := c.ExportSave(ctx, opts.player)
		if err != nil {
			return err
		}
		if err := os.WriteFile(rest[0], data, 0o600); err != nil {
			return fmt.Errorf("failed to write save: %w", err)
		}
		fmt.Fprintln(stdout, styles.muted.Render(fmt.Sprintf("saved %d bytes to %s", len(data), rest[0])))

	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("import takes a file name")
		}
		data, err := os.ReadFile(rest[0])
		if err != nil {
			return fmt.Errorf("failed to read save: %w", err)
		}
		p, err := c.ImportSave(ctx, opts.player, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderProfile(p))

	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		fs.Usage()
		return errUsage
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
