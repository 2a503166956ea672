// Command userpanel runs the user-directory panel on a terminal,
// talking to a userpaneld (or compatible) directory service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/undiziwa/userpanel/internal/client"
	"github.com/undiziwa/userpanel/internal/models"
	"github.com/undiziwa/userpanel/internal/panel"
	"github.com/undiziwa/userpanel/pkg/config"
	"github.com/undiziwa/userpanel/pkg/logger"
)

const bootstrapPageSize = 100

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()
	api := client.New(cfg.API, logr)

	login, err := api.Login(ctx, cfg.API.Username, cfg.API.Password)
	if err != nil {
		logr.Sugar().Fatalw("login failed", "error", err)
	}

	users, err := bootstrapUsers(ctx, api)
	if err != nil {
		logr.Sugar().Fatalw("failed to load users", "error", err)
	}

	view := newTerminalView(os.Stdout, os.Stdin)
	notifier := panel.NewNotifier(view, cfg.Panel.ToastDuration)
	ctrl := panel.NewController(view, login.User.Role, users, cfg.Panel.PageSize, logr)
	editFlow := panel.NewEditFlow(ctrl, api, view, notifier, view, logr)
	createFlow := panel.NewCreateFlow(ctrl, api, view, notifier, validator.New(), logr)

	ctrl.Render()
	view.paint()
	repl(ctx, view, ctrl, editFlow, createFlow)
}

// bootstrapUsers pulls the whole directory page by page; it stands in
// for the template layer that seeded the collection in the original.
func bootstrapUsers(ctx context.Context, api *client.Client) ([]models.User, error) {
	var users []models.User
	for page := 1; ; page++ {
		res, err := api.ListUsers(ctx, models.UserFilter{Page: page, PageSize: bootstrapPageSize})
		if err != nil {
			return nil, err
		}
		users = append(users, res.Users...)
		if page >= res.Pages || len(res.Users) == 0 {
			break
		}
	}
	return users, nil
}

func repl(ctx context.Context, view *terminalView, ctrl *panel.Controller, editFlow *panel.EditFlow, createFlow *panel.CreateFlow) {
	var search, roleFilter, statusFilter string

	fmt.Println(`commands: s <text> | r <role> | a <true|false|-> | n | p | m <id> | c | q`)
	for {
		line := view.prompt(">")
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "q":
			return
		case "s":
			search = arg
			ctrl.ApplyFilterInputs(search, roleFilter, statusFilter)
		case "r":
			roleFilter = arg
			ctrl.ApplyFilterInputs(search, roleFilter, statusFilter)
		case "a":
			if arg == "-" {
				arg = ""
			}
			statusFilter = arg
			ctrl.ApplyFilterInputs(search, roleFilter, statusFilter)
		case "n":
			ctrl.NextPage()
		case "p":
			ctrl.PrevPage()
		case "m":
			manage(ctx, view, ctrl, editFlow, arg)
		case "c":
			create(ctx, view, createFlow)
		default:
			fmt.Println("unknown command")
			continue
		}
		view.paint()
	}
}

func manage(ctx context.Context, view *terminalView, ctrl *panel.Controller, flow *panel.EditFlow, arg string) {
	if !ctrl.ViewerRole().CanManageUsers() {
		fmt.Println("not permitted")
		return
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("usage: m <user id>")
		return
	}

	var target *models.User
	for _, u := range ctrl.Users() {
		if u.UserID == id {
			found := u
			target = &found
			break
		}
	}
	if target == nil {
		fmt.Println("no such user")
		return
	}

	flow.Open(*target)
	role := view.prompt("role")
	if role == "" {
		role = string(target.Role)
	}
	active := view.prompt("active (true/false)")
	if active == "" {
		active = strconv.FormatBool(target.IsActive)
	}

	switch view.prompt("action (save/reset/cancel)") {
	case "save":
		flow.Save(ctx, role, active)
	case "reset":
		flow.ResetPassword(ctx)
		flow.Cancel()
	default:
		flow.Cancel()
	}
}

func create(ctx context.Context, view *terminalView, flow *panel.CreateFlow) {
	flow.Open()
	form := panel.CreateForm{
		Username:      view.prompt("username"),
		FullName:      view.prompt("full name"),
		Email:         view.prompt("email"),
		Phone:         view.prompt("phone"),
		Password:      view.prompt("password"),
		Role:          view.prompt("role"),
		IsActive:      view.prompt("active (true/false)"),
		InstitutionID: view.prompt("institution id (blank for none)"),
	}

	if view.prompt("action (save/cancel)") == "save" {
		flow.Save(ctx, form)
		if flow.IsOpen() {
			flow.Cancel()
		}
		return
	}
	flow.Cancel()
}
