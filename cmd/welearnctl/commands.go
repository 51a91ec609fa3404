package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/yigit/welearn/internal/app/models"
	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/pkg/apiclient"
	"github.com/yigit/welearn/internal/pkg/auth"
	"github.com/yigit/welearn/internal/pkg/poststore"
)

func newClient(c *cli.Context) *apiclient.Client {
	return apiclient.New(c.String("api"), apiclient.WithToken(c.String("token")))
}

func requireToken(c *cli.Context) (models.Actor, error) {
	token := c.String("token")
	if token == "" {
		return models.Actor{}, errors.New("a session token is required; run login first and pass --token")
	}
	return auth.PeekActor(token)
}

func parseID(c *cli.Context) (int64, error) {
	raw := c.Args().First()
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return id, nil
}

func postsCommand() *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "browse and manage posts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list posts, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "filter by title, content or author"},
				},
				Action: listPosts,
			},
			{
				Name:   "mine",
				Usage:  "list the posts of the logged in student",
				Action: myPosts,
			},
			{
				Name:      "show",
				Usage:     "show one post",
				ArgsUsage: "ID",
				Action:    showPost,
			},
			{
				Name:  "create",
				Usage: "publish a post",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "content", Required: true},
					&cli.StringFlag{Name: "author", Usage: "display name; students always publish as themselves"},
				},
				Action: createPost,
			},
			{
				Name:      "edit",
				Usage:     "change a post",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "content"},
					&cli.StringFlag{Name: "author"},
				},
				Action: editPost,
			},
			{
				Name:      "delete",
				Usage:     "delete a post",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation"},
				},
				Action: deletePost,
			},
		},
	}
}

func listPosts(c *cli.Context) error {
	store := poststore.New()
	if err := poststore.Load(c.Context, store, newClient(c)); err != nil {
		return err
	}

	state := store.Dispatch(poststore.SetSearchTerm{Term: c.String("search")})
	writePosts(c.App.Writer, state.Filtered)
	return nil
}

func myPosts(c *cli.Context) error {
	actor, err := requireToken(c)
	if err != nil {
		return err
	}
	if !actor.IsStudent() {
		return errors.New("posts mine lists student posts; log in as a student")
	}

	store := poststore.New()
	if err := poststore.LoadStudent(c.Context, store, newClient(c), actor.ID); err != nil {
		return err
	}
	writePosts(c.App.Writer, store.State().Posts)
	return nil
}

func showPost(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	post, err := poststore.Open(c.Context, poststore.New(), newClient(c), id)
	if err != nil {
		return err
	}

	writePost(c.App.Writer, post)
	return nil
}

func createPost(c *cli.Context) error {
	actor, err := requireToken(c)
	if err != nil {
		return err
	}

	author := c.String("author")
	if author == "" {
		author = actor.Name
	}
	authorType := models.AuthorType(actor.Role)

	post, err := poststore.Publish(c.Context, poststore.New(), newClient(c), dto.CreatePostRequest{
		Title:      c.String("title"),
		Content:    c.String("content"),
		Author:     author,
		AuthorType: &authorType,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "created post %d\n", post.ID)
	return nil
}

func openEditor(c *cli.Context) (*poststore.Editor, error) {
	actor, err := requireToken(c)
	if err != nil {
		return nil, err
	}
	id, err := parseID(c)
	if err != nil {
		return nil, err
	}

	client := newClient(c)
	store := poststore.New()
	post, err := poststore.Open(c.Context, store, client, id)
	if err != nil {
		return nil, err
	}

	return poststore.NewEditor(store, client, &actor, *post), nil
}

func editPost(c *cli.Context) error {
	var req dto.UpdatePostRequest
	for name, dst := range map[string]**string{"title": &req.Title, "content": &req.Content, "author": &req.Author} {
		if c.IsSet(name) {
			v := c.String(name)
			*dst = &v
		}
	}
	if req.Title == nil && req.Content == nil && req.Author == nil {
		return errors.New("nothing to change; pass --title, --content or --author")
	}

	editor, err := openEditor(c)
	if err != nil {
		return err
	}
	if err := editor.Edit(); err != nil {
		return err
	}
	if err := editor.Save(c.Context, req); err != nil {
		return err
	}

	post := editor.Post()
	writePost(c.App.Writer, &post)
	return nil
}

func deletePost(c *cli.Context) error {
	editor, err := openEditor(c)
	if err != nil {
		return err
	}
	if err := editor.Delete(); err != nil {
		return err
	}

	if !c.Bool("yes") && !confirm(c, fmt.Sprintf("Delete %q?", editor.Post().Title)) {
		_ = editor.Cancel()
		fmt.Fprintln(c.App.Writer, "cancelled")
		return nil
	}

	if err := editor.Confirm(c.Context); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted post %d\n", editor.Post().ID)
	return nil
}

func confirm(c *cli.Context, question string) bool {
	fmt.Fprintf(c.App.Writer, "%s [y/N] ", question)
	var answer string
	if _, err := fmt.Fscanln(c.App.Reader, &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func loginCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "email", Required: true},
		&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"WELEARN_PASSWORD"}},
	}

	return &cli.Command{
		Name:  "login",
		Usage: "obtain a session token",
		Subcommands: []*cli.Command{
			{
				Name:  "student",
				Usage: "log in as a student",
				Flags: flags,
				Action: func(c *cli.Context) error {
					session, err := newClient(c).LoginStudent(c.Context, c.String("email"), c.String("password"))
					return printSession(c, session, err)
				},
			},
			{
				Name:  "teacher",
				Usage: "log in as a teacher",
				Flags: flags,
				Action: func(c *cli.Context) error {
					session, err := newClient(c).LoginTeacher(c.Context, c.String("email"), c.String("password"))
					return printSession(c, session, err)
				},
			},
		},
	}
}

func printSession(c *cli.Context, session *apiclient.Session, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "logged in as %s (%s), expires %s\n",
		session.Actor.Name, session.Actor.Role, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(c.App.Writer, "export WELEARN_TOKEN=%s\n", session.Token)
	return nil
}

func writePosts(w io.Writer, posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "no posts")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tTYPE\tCREATED")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Author, p.AuthorType, p.CreatedAt.Local().Format("2006-01-02"))
	}
	_ = tw.Flush()
}

func writePost(w io.Writer, p *models.Post) {
	fmt.Fprintf(w, "#%d %s\n", p.ID, p.Title)
	fmt.Fprintf(w, "by %s (%s), %s\n\n", p.Author, p.AuthorType, p.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(w, p.Content)
}
