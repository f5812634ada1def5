package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/cache"
	"github.com/askholmes/holmes/pkg/model"
	"github.com/askholmes/holmes/pkg/notify"
	"github.com/askholmes/holmes/pkg/session"
	"github.com/askholmes/holmes/pkg/usecase/editor"
	"github.com/askholmes/holmes/pkg/usecase/questions"
	"github.com/askholmes/holmes/pkg/usecase/rag"
	"github.com/askholmes/holmes/pkg/utils/logging"
)

func consoleCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "console",
		Usage: "Interactive question notebook",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := cfg.currentSession()
			if err != nil {
				return err
			}

			ctx = logging.With(ctx, cfg.logger(c.Root().ErrWriter))

			w := c.Root().Writer
			queue := notify.New(notify.WithObserver(func(n *model.Notification) {
				if n != nil {
					fmt.Fprintf(w, "%s %s\n", kindMark(n.Kind), n.Message)
				}
			}))

			qc := cache.New()
			quc := questions.New(cfg.newQuestions(), qc, queue, sess.UserID)

			con := &console{
				w:         w,
				sess:      sess,
				questions: quc,
				editor:    editor.New(quc),
				rag:       rag.New(cfg.newRAG(), queue),
				queue:     queue,
			}

			return con.run(ctx)
		},
	}
}

type console struct {
	w         io.Writer
	rl        *readline.Instance
	sess      *session.Session
	questions *questions.UseCase
	editor    *editor.Session
	rag       *rag.UseCase
	queue     *notify.Queue
}

func (con *console) run(ctx context.Context) error {
	rl, err := readline.New("holmes> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	con.rl = rl

	fmt.Fprintf(con.w, "Signed in as %s. Type 'help' for commands.\n", con.sess.Email)

	con.spin(" Loading your questions...", func() {
		if err := con.questions.Load(ctx); err != nil {
			fmt.Fprintf(con.w, "Failed to load questions: %s (type 'refresh' to retry)\n", err.Error())
		}
	})
	if con.questions.Cache().Loaded() {
		con.renderList()
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			break
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			con.printHelp()
		case "list":
			con.renderList()
		case "refresh":
			con.spin(" Refreshing...", func() {
				if err := con.questions.Load(ctx); err != nil {
					fmt.Fprintf(con.w, "Failed to load questions: %s\n", err.Error())
				}
			})
			if con.questions.Cache().Loaded() {
				con.renderList()
			}
		case "add":
			con.handleAdd(ctx)
		case "edit":
			con.handleEdit(ctx, args)
		case "delete":
			con.handleDelete(ctx, args)
		case "show":
			con.handleShow(args)
		case "ask":
			con.handleAsk(ctx, strings.Join(args, " "))
		case "upload":
			con.handleUpload(ctx, args)
		case "docs":
			con.handleDocs(ctx)
		case "search":
			con.handleSearch(ctx, strings.Join(args, " "))
		case "dismiss":
			con.queue.Dismiss()
		default:
			fmt.Fprintf(con.w, "Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}

	return nil
}

func (con *console) printHelp() {
	fmt.Fprint(con.w, `Commands:
  list              Show your questions
  add               Save a new question (answer manually or from documents)
  edit <n>          Edit question number <n>
  delete <n>        Delete question number <n>
  show <n>          Show question number <n> in full
  ask <question>    Ask the document corpus without saving
  upload <path>     Upload a PDF book and reindex the corpus
  docs              List indexed documents
  search <query>    Retrieve ranked passages
  refresh           Refetch the question list
  dismiss           Clear the visible notification
  quit              Leave the console
`)
}

func (con *console) renderList() {
	records := con.questions.Cache().Records()
	if len(records) == 0 {
		fmt.Fprintf(con.w, "No questions yet. Type 'add' to create one.\n")
		return
	}

	fmt.Fprintf(con.w, "%d questions\n", len(records))
	for i, r := range records {
		answered := " "
		if r.Answer != "" {
			answered = "*"
		}
		fmt.Fprintf(con.w, "%3d %s %s\n", i+1, answered, summarize(r.Question, 70))
	}
}

// pick resolves a displayed list number to a cached record
func (con *console) pick(args []string) *model.QuestionRecord {
	if len(args) != 1 {
		fmt.Fprintf(con.w, "Give one question number, e.g. 'edit 2'\n")
		return nil
	}

	n, err := strconv.Atoi(args[0])
	records := con.questions.Cache().Records()
	if err != nil || n < 1 || n > len(records) {
		fmt.Fprintf(con.w, "No question %q in the list\n", args[0])
		return nil
	}

	return records[n-1]
}

func (con *console) handleAdd(ctx context.Context) {
	if !con.editor.OpenCreate() {
		fmt.Fprintf(con.w, "Finish the current edit first\n")
		return
	}

	question := con.prompt("question> ")
	if strings.TrimSpace(question) == "" {
		con.editor.Close()
		fmt.Fprintf(con.w, "Cancelled\n")
		return
	}

	answer := con.promptAnswer(ctx, question, "")

	if _, err := con.editor.Submit(ctx, question, answer); err != nil {
		// Failure keeps the session open so the input survives, but the
		// console re-prompts next time; close to keep its state simple.
		con.editor.Close()
	}
}

func (con *console) handleEdit(ctx context.Context, args []string) {
	record := con.pick(args)
	if record == nil {
		return
	}

	con.editor.OpenEdit(record)

	fmt.Fprintf(con.w, "Editing: %s\n", summarize(record.Question, 70))
	question := con.prompt("question (enter keeps current)> ")
	if strings.TrimSpace(question) == "" {
		question = record.Question
	}

	answer := con.promptAnswer(ctx, question, record.Answer)

	if _, err := con.editor.Submit(ctx, question, answer); err != nil {
		con.editor.Close()
	}
}

// promptAnswer reads an answer, offering '?' to generate one from the
// document corpus. A failed generation leaves the previous answer untouched.
func (con *console) promptAnswer(ctx context.Context, question, current string) string {
	label := "answer (enter to skip, ? to ask documents)> "
	if current != "" {
		label = "answer (enter keeps current, ? to ask documents)> "
	}

	input := con.prompt(label)
	switch strings.TrimSpace(input) {
	case "":
		return current
	case "?":
		var generated string
		con.spin(" Consulting the archives...", func() {
			generated, _ = con.rag.Ask(ctx, question)
		})
		if generated == "" {
			return current
		}
		fmt.Fprintf(con.w, "%s\n", generated)
		return generated
	default:
		return input
	}
}

func (con *console) handleDelete(ctx context.Context, args []string) {
	record := con.pick(args)
	if record == nil {
		return
	}

	if con.prompt("delete? (y/N)> ") != "y" {
		fmt.Fprintf(con.w, "Cancelled\n")
		return
	}

	_ = con.questions.Delete(ctx, record.ID)
}

func (con *console) handleShow(args []string) {
	record := con.pick(args)
	if record == nil {
		return
	}

	fmt.Fprintf(con.w, "Q: %s\n", record.Question)
	if record.Answer != "" {
		fmt.Fprintf(con.w, "A: %s\n", record.Answer)
	} else {
		fmt.Fprintf(con.w, "A: (unanswered)\n")
	}
	fmt.Fprintf(con.w, "created %s\n", record.CreatedAt.Format("2006-01-02 15:04"))
}

func (con *console) handleAsk(ctx context.Context, question string) {
	if strings.TrimSpace(question) == "" {
		question = con.prompt("question> ")
		if strings.TrimSpace(question) == "" {
			return
		}
	}

	var answer string
	con.spin(" Consulting the archives...", func() {
		answer, _ = con.rag.Ask(ctx, question)
	})
	if answer != "" {
		fmt.Fprintf(con.w, "%s\n", answer)
	}
}

func (con *console) handleUpload(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(con.w, "Give one file path, e.g. 'upload ./book.pdf'\n")
		return
	}
	if con.rag.UploadBusy() {
		fmt.Fprintf(con.w, "An upload is already in flight\n")
		return
	}

	con.spin(" Uploading and indexing...", func() {
		con.rag.UploadAndIndexFile(ctx, con.sess.UserID, args[0])
	})
}

func (con *console) handleDocs(ctx context.Context) {
	docs, err := con.rag.Documents(ctx)
	if err != nil {
		return
	}

	if len(docs) == 0 {
		fmt.Fprintf(con.w, "No documents indexed\n")
		return
	}
	for _, d := range docs {
		fmt.Fprintf(con.w, "%s\t%s\t%d chunks\n", d.ID, d.Filename, d.ChunkCount)
	}
}

func (con *console) handleSearch(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		fmt.Fprintf(con.w, "Give a query, e.g. 'search baker street'\n")
		return
	}

	chunks, err := con.rag.Search(ctx, query, 0)
	if err != nil {
		return
	}

	for i, chunk := range chunks {
		fmt.Fprintf(con.w, "--- %d (chunk %d)\n%s\n", i+1, chunk.ChunkIndex, chunk.ChunkText)
	}
}

// prompt reads one line under a temporary prompt
func (con *console) prompt(label string) string {
	con.rl.SetPrompt(label)
	defer con.rl.SetPrompt("holmes> ")

	line, err := con.rl.Readline()
	if err != nil {
		return ""
	}
	return line
}

func (con *console) spin(suffix string, fn func()) {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = suffix
	sp.Start()
	defer sp.Stop()
	fn()
}
