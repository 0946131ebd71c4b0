package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/api"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/cart"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/catalog"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/checkout"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/config"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/models"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/session"
	"github.com/lumashop/lumashop/clients/go-storefront/internal/storage"
	"github.com/lumashop/lumashop/clients/go-storefront/pkg/logger"
)

// app bundles the wired stores for the command handlers. The stores are
// constructed once at startup and passed by reference, never reached
// through globals.
type app struct {
	cfg      *config.Config
	client   *api.Client
	session  *session.Store
	cart     *cart.Store
	checkout *checkout.Service
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Debugf("config loaded: backend=%s storage=%s", cfg.API.BaseURL, cfg.Storage.Backend)

	kv := openStorage(cfg)
	client := api.NewClient(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateRPS:   cfg.API.RateRPS,
		RateBurst: cfg.API.RateBurst,
	})
	sess := session.New(kv, client)
	client.SetTokenSource(sess)
	sess.Initialize()

	basket := cart.New(kv)
	a := &app{
		cfg:      cfg,
		client:   client,
		session:  sess,
		cart:     basket,
		checkout: checkout.New(basket, sess, client),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := a.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openStorage selects the KV backend from config, falling back to the
// file store when a remote backend is unreachable.
func openStorage(cfg *config.Config) storage.Store {
	switch cfg.Storage.Backend {
	case "memory":
		return storage.NewMemory()
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("redis unreachable (%v), falling back to file storage", err)
			return openFile(cfg)
		}
		return storage.NewRedis(client, "storefront:")
	case "mongo":
		client, err := storage.ConnectMongo(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Warnf("mongo unreachable (%v), falling back to file storage", err)
			return openFile(cfg)
		}
		col := client.Database(cfg.MongoDB.Database).Collection("client_state")
		return storage.NewMongo(col, cfg.MongoDB.Timeout)
	default:
		return openFile(cfg)
	}
}

func openFile(cfg *config.Config) storage.Store {
	f, err := storage.NewFile(cfg.Storage.Path)
	if err != nil {
		logger.Warnf("file storage unavailable (%v), state will not persist", err)
		return storage.NewMemory()
	}
	return f
}

func (a *app) run(cmd string, args []string) error {
	ctx := context.Background()
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		a.session.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "products":
		return a.cmdProducts(ctx, args)
	case "cart":
		return a.cmdCart(ctx, args)
	case "checkout":
		return a.cmdCheckout(ctx)
	case "orders":
		return a.cmdOrders(ctx)
	case "admin":
		return a.cmdAdmin(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)
	if *username == "" || *password == "" {
		return fmt.Errorf("usage: login -u <username> -p <password>")
	}
	if !a.session.Login(ctx, *username, *password) {
		return fmt.Errorf("%s", a.session.LastError())
	}
	u := a.session.CurrentUser()
	fmt.Printf("logged in as %s (admin=%v)\n", u.Username, u.IsAdmin)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	password := fs.String("p", "", "password")
	_ = fs.Parse(args)
	if *username == "" || *email == "" || *password == "" {
		return fmt.Errorf("usage: register -u <username> -e <email> -p <password>")
	}
	reg := api.Registration{Username: *username, Email: *email, Password: *password}
	if !a.session.Register(ctx, reg) {
		return fmt.Errorf("%s", a.session.LastError())
	}
	fmt.Printf("registered and logged in as %s\n", *username)
	return nil
}

func (a *app) cmdWhoami() error {
	if !a.session.IsAuthenticated() {
		fmt.Println("not logged in")
		return nil
	}
	u := a.session.CurrentUser()
	fmt.Printf("%s <%s> admin=%v\n", u.Username, u.Email, u.IsAdmin)
	return nil
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	search := fs.String("search", "", "search name/description")
	sortKey := fs.String("sort", catalog.SortName, "sort key: name|price")
	desc := fs.Bool("desc", false, "sort descending")
	_ = fs.Parse(args)

	products, err := a.client.Products(ctx)
	if err != nil {
		return err
	}
	products = catalog.FilterByCategory(products, *category)
	products = catalog.Search(products, *search)
	products = catalog.Sort(products, *sortKey, !*desc)

	for _, p := range products {
		fmt.Printf("%-6d %-28s %8.2f  %s\n", p.ID, p.Name, p.Price, p.Category)
	}
	if cats := catalog.Categories(products); len(cats) > 0 {
		fmt.Printf("categories: %v\n", cats)
	}
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: cart add|show|clear")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		id := fs.Int64("id", 0, "product id")
		qty := fs.Int("qty", 1, "quantity")
		_ = fs.Parse(args[1:])

		products, err := a.client.Products(ctx)
		if err != nil {
			return err
		}
		var picked *models.Product
		for i := range products {
			if products[i].ID == *id {
				picked = &products[i]
				break
			}
		}
		if picked == nil {
			return fmt.Errorf("no product with id %d", *id)
		}
		if err := a.cart.Add(*picked, *qty); err != nil {
			return err
		}
		fmt.Printf("added %dx %s\n", *qty, picked.Name)
		return nil
	case "show":
		lines := a.cart.Get()
		if len(lines) == 0 {
			fmt.Println("cart is empty")
			return nil
		}
		for _, l := range lines {
			fmt.Printf("%-6d %-28s %3dx %8.2f = %s\n", l.ID, l.Name, l.Qty, l.Price, l.Subtotal().StringFixed(2))
		}
		fmt.Printf("total: %s\n", a.cart.Total().StringFixed(2))
		return nil
	case "clear":
		if err := a.cart.Clear(); err != nil {
			return err
		}
		fmt.Println("cart cleared")
		return nil
	default:
		return fmt.Errorf("usage: cart add|show|clear")
	}
}

func (a *app) cmdCheckout(ctx context.Context) error {
	order, err := a.checkout.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("order %s placed (status=%s total=%.2f)\n", order.ID, order.Status, order.Total)
	return nil
}

func (a *app) cmdOrders(ctx context.Context) error {
	orders, err := a.client.Orders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("no orders")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("%-36s %-10s %8.2f  %s\n", o.ID, o.Status, o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: admin users|orders")
	}
	switch args[0] {
	case "users":
		users, err := a.client.AdminUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%-8s %-16s %-28s %s\n", u.UserID, u.Username, u.Email, u.Role)
		}
		return nil
	case "orders":
		orders, err := a.client.AdminOrders(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%-36s %-10s %8.2f\n", o.ID, o.Status, o.Total)
		}
		return nil
	default:
		return fmt.Errorf("usage: admin users|orders")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `storefront - Lumashop storefront client

commands:
  login -u <user> -p <pass>     authenticate and cache the session
  register -u -e -p             create an account and log in
  logout                        end the session (always clears locally)
  whoami                        show the cached identity
  products [-category] [-search] [-sort name|price] [-desc]
  cart add -id <product> [-qty] | cart show | cart clear
  checkout                      place an order from the cart
  orders                        list your orders
  admin users|orders            back-office listings (ADMIN role)`)
}
