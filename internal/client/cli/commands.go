package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/photosync/internal/common"
)

const historyLimit = 20

func (a *App) Help(ctx context.Context) error {
	fmt.Fprintln(a.out, "Available commands: load, list, toggle <n|id>..., selected, upload, login, logout, status, history, exit")
	return nil
}

func (a *App) Load(ctx context.Context) error {
	err := a.svc.LoadLibrary(ctx)
	fmt.Fprintln(a.out, a.svc.State().Message)
	return err
}

func (a *App) List(ctx context.Context) error {
	assets := a.svc.Assets()
	if len(assets) == 0 {
		fmt.Fprintln(a.out, "Nothing loaded, run 'load' first")
		return nil
	}
	for i, ref := range assets {
		mark := " "
		if a.svc.IsSelected(ref.ID) {
			mark = "x"
		}
		fmt.Fprintf(a.out, "%3d [%s] %s  %s  %d bytes\n",
			i+1, mark, ref.ID, ref.ModTime.Format("2006-01-02 15:04"), ref.Size)
	}
	return nil
}

// Toggle accepts listing numbers (1-based) or asset ids.
func (a *App) Toggle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: toggle <n|id>...")
		return common.ErrInvalidInput
	}

	assets := a.svc.Assets()
	var unknown error
	for _, arg := range args {
		id := arg
		if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(assets) {
			id = assets[n-1].ID
		}

		wasSelected := a.svc.IsSelected(id)
		selected := a.svc.ToggleSelection(id)
		switch {
		case selected:
			fmt.Fprintln(a.out, "selected", id)
		case wasSelected:
			fmt.Fprintln(a.out, "deselected", id)
		default:
			fmt.Fprintln(a.out, "Unknown item:", arg)
			unknown = fmt.Errorf("item %q: %w", arg, common.ErrNotFound)
		}
	}
	return unknown
}

func (a *App) ShowSelected(ctx context.Context) error {
	sel := a.svc.Selected()
	if len(sel) == 0 {
		fmt.Fprintln(a.out, "No photos selected")
		return nil
	}
	for _, ref := range sel {
		fmt.Fprintln(a.out, " -", ref.ID)
	}
	return nil
}

func (a *App) Upload(ctx context.Context) error {
	if a.userID == "" {
		id, err := GetSimpleText(a.reader, "User id", a.out)
		if err != nil {
			return err
		}
		if id == "" {
			fmt.Fprintln(a.out, "A user id is required")
			return common.ErrInvalidInput
		}
		a.userID = id
	}
	if _, ok := a.creds.Read(); !ok {
		a.log.Warn(ctx, "no bearer token stored, requesting upload tokens anonymously")
	}

	err := a.svc.UploadSelected(ctx, a.userID)
	fmt.Fprintln(a.out, a.svc.State().Message)
	return err
}

func (a *App) Login(ctx context.Context) error {
	token, err := GetSecret(a.reader, "Bearer token", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	if len(token) == 0 {
		fmt.Fprintln(a.out, "Empty token, nothing saved")
		return common.ErrInvalidInput
	}
	if err := a.creds.Save(string(token)); err != nil {
		a.log.Error(ctx, "save credential", "error", err)
		fmt.Fprintln(a.out, "Could not save token:", err)
		return err
	}
	fmt.Fprintln(a.out, "Token saved")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.creds.Clear(); err != nil {
		a.log.Error(ctx, "clear credential", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "Token removed")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st := a.svc.State()
	_, hasToken := a.creds.Read()

	msg := st.Message
	if msg == "" {
		msg = "-"
	}
	fmt.Fprintf(a.out, "state: %s\nmessage: %s\nloaded: %d  selected: %d  uploaded: %d\ntoken stored: %t\n",
		st.Status, msg, st.Loaded, st.Selected, st.Uploaded, hasToken)
	return nil
}

func (a *App) History(ctx context.Context) error {
	recs, err := a.svc.History(ctx, historyLimit)
	if err != nil {
		a.log.Error(ctx, "read upload history", "error", err)
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No uploads yet")
		return nil
	}
	for _, r := range recs {
		fmt.Fprintf(a.out, "%s  %s -> %s  (%d bytes)\n",
			r.UploadedAt.Local().Format("2006-01-02 15:04:05"), r.AssetID, r.BlobName, r.Size)
	}
	return nil
}
