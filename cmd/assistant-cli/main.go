// Command assistant-cli is a terminal companion for the emergency-assistant
// service. It keeps a device-local location and preparedness state, fetches
// emergency data through the HTTP API, and caches static assets for offline
// use.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"github.com/emergencyai/emergency-assistant/internal/chat"
	"github.com/emergencyai/emergency-assistant/internal/client"
	"github.com/emergencyai/emergency-assistant/internal/config"
	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
	"github.com/emergencyai/emergency-assistant/internal/offline"
	"github.com/emergencyai/emergency-assistant/internal/panel"
	"github.com/emergencyai/emergency-assistant/internal/prep"
	"github.com/emergencyai/emergency-assistant/internal/store"
)

type app struct {
	resolver   *location.Resolver
	controller *panel.Controller
	contacts   *prep.Contacts
	checklist  *prep.Checklist
	cache      *offline.Cache

	mu           sync.Mutex
	lastCategory emergency.Category
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	api := client.New(httpClient, cfg.ServerURL)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}
	kv := store.NewFileKV(filepath.Join(cfg.DataDir, "assistant.json"))

	a := &app{
		resolver: location.NewResolver(
			nil, // no device geolocation in a terminal
			location.NewGoogleReverseGeocoder(cfg.GeocoderAPIKey),
			location.NewIPAPILocator(httpClient),
			api,
			kv,
		),
		contacts:  prep.NewContacts(kv),
		checklist: prep.NewChecklist(kv),
	}
	if err := a.checklist.Seed(); err != nil {
		log.Printf("ERROR: seeding checklist: %v", err)
	}

	a.controller = panel.NewController(api, a.resolver.Current, panel.WithReload(a.reloadPanel))
	a.controller.Subscribe(printEvent)

	// A new location re-fetches whatever the data pane was showing.
	a.resolver.Subscribe(func(location.Location) {
		a.mu.Lock()
		category := a.lastCategory
		a.mu.Unlock()
		if category != "" {
			a.controller.Fetch(context.Background(), category)
		}
	})

	// Offline asset cache: install this version's manifest and purge old
	// generations.
	storage := offline.NewStorage()
	a.cache = offline.NewCache(cfg.CacheVersion, nil, offline.NewHTTPAssetSource(httpClient, cfg.ServerURL), storage)
	a.cache.Install(context.Background())
	for _, purged := range a.cache.Activate() {
		log.Printf("INFO: purged offline cache generation %s", purged)
	}

	fmt.Printf("Emergency AI Assistant — location: %s (type 'help' for commands)\n", a.resolver.Current())
	a.repl(os.Stdin)
}

func (a *app) repl(in *os.File) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		a.dispatch(line)
	}
}

func (a *app) dispatch(line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	ctx := context.Background()

	switch cmd {
	case "help":
		printHelp()
	case "location":
		fmt.Println(a.resolver.Current())
	case "set":
		if len(args) == 0 {
			fmt.Println("usage: set <city> [country]")
			return
		}
		country := ""
		if len(args) > 1 {
			country = strings.Join(args[1:], " ")
		}
		loc, err := a.resolver.SetManual(ctx, args[0], country)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Printf("location set to %s\n", loc)
	case "detect":
		loc, err := a.resolver.DetectByNetwork(ctx)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Printf("detected %s\n", loc)
	case "fetch":
		if len(args) != 1 {
			fmt.Printf("usage: fetch <%s>\n", categoryList())
			return
		}
		category, err := emergency.ParseCategory(args[0])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		a.mu.Lock()
		a.lastCategory = category
		a.mu.Unlock()
		a.controller.Fetch(ctx, category)
	case "chat":
		fmt.Println(chat.Reply(strings.Join(args, " ")))
	case "panel":
		if len(args) != 1 {
			fmt.Println("usage: panel <map-data|chat|contacts|checklist|procedures>")
			return
		}
		active := a.controller.Toggle(panel.Panel(args[0]))
		fmt.Printf("active panel: %s\n", active)
	case "contacts":
		a.printContacts()
	case "contact":
		a.contactCommand(args)
	case "checklist":
		a.printChecklist()
	case "check":
		a.checkCommand(args)
	case "procedures":
		for _, p := range prep.Procedures() {
			fmt.Printf("%s:\n", p.Type)
			for i, step := range p.Steps {
				fmt.Printf("  %d. %s\n", i+1, step)
			}
		}
	case "asset":
		if len(args) != 1 {
			fmt.Println("usage: asset <path>")
			return
		}
		body, err := a.cache.Intercept(ctx, args[0])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Printf("%d bytes\n", len(body))
	default:
		fmt.Printf("unknown command %q; type 'help'\n", cmd)
	}
}

func (a *app) contactCommand(args []string) {
	if len(args) >= 3 && args[0] == "add" {
		name := strings.Join(args[1:len(args)-1], " ")
		phone := args[len(args)-1]
		if err := a.contacts.Add(name, phone); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		a.printContacts()
		return
	}
	if len(args) == 2 && args[0] == "del" {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("usage: contact del <index>")
			return
		}
		if err := a.contacts.Delete(index); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		a.printContacts()
		return
	}
	fmt.Println("usage: contact add <name> <phone> | contact del <index>")
}

func (a *app) checkCommand(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: check <index>")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage: check <index>")
		return
	}
	if err := a.checklist.Toggle(index); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	a.printChecklist()
}

func (a *app) printContacts() {
	contacts, err := a.contacts.List()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if len(contacts) == 0 {
		fmt.Println("no emergency contacts saved")
		return
	}
	for i, c := range contacts {
		fmt.Printf("  %d. %s (%s)\n", i, c.Name, c.Phone)
	}
}

func (a *app) printChecklist() {
	items, err := a.checklist.Items()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	for i, item := range items {
		mark := " "
		if item.Checked {
			mark = "x"
		}
		fmt.Printf("  %d. [%s] %s\n", i, mark, item.Item)
	}
}

// reloadPanel backs the panel controller's local-data reload hook.
func (a *app) reloadPanel(p panel.Panel) error {
	switch p {
	case panel.Contacts:
		_, err := a.contacts.List()
		return err
	case panel.Checklist:
		_, err := a.checklist.Items()
		return err
	default:
		return nil
	}
}

// printEvent renders panel state changes as they commit; fetches complete
// asynchronously.
func printEvent(ev panel.Event) {
	switch ev.Sub {
	case panel.Loading:
		fmt.Println("loading...")
	case panel.Errored:
		fmt.Printf("error: %s\n", ev.Err)
	case panel.Loaded:
		if ev.Result == nil {
			return
		}
		body, err := json.MarshalIndent(ev.Result.Payload(), "", "  ")
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Println(string(body))
		if coords, ok := ev.Result.Coordinates(); ok {
			fmt.Printf("map centre: %g, %g\n", coords.Lat, coords.Lon)
		}
	}
}

func categoryList() string {
	parts := make([]string, len(emergency.Categories))
	for i, c := range emergency.Categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, "|")
}

func printHelp() {
	fmt.Print(`commands:
  location                    show the current location
  set <city> [country]        set the location manually
  detect                      detect the location from the network address
  fetch <category>            fetch emergency data (` + categoryList() + `)
  panel <name>                toggle a panel (map-data|chat|contacts|checklist|procedures)
  chat <message>              ask the assistant
  contacts                    list emergency contacts
  contact add <name> <phone>  add an emergency contact
  contact del <index>         delete an emergency contact
  checklist                   show the preparedness checklist
  check <index>               toggle a checklist item
  procedures                  show emergency procedures
  asset <path>                serve an asset through the offline cache
  quit                        exit
`)
}
