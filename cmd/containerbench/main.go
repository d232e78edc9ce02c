// containerbench runs the spec.md §8 concrete end-to-end scenarios as
// subcommands, the way m.go demonstrated the teacher's hashmap.Map by
// hand. Each subcommand prints its result with dlog.D, same as m.go did.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kirillDanshin/dlog"
	"github.com/urfave/cli/v2"

	"github.com/gramework/containers/hashmap"
	"github.com/gramework/containers/hook"
	"github.com/gramework/containers/orderedmap"
	"github.com/gramework/containers/strbuf"
	"github.com/gramework/containers/strview"
)

func main() {
	app := &cli.App{
		Name:  "containerbench",
		Usage: "run the container library's end-to-end scenarios",
		Commands: []*cli.Command{
			hashmapRoundTripCmd(),
			rehashCorrectnessCmd(),
			orderedIterationCmd(),
			formattedPushCmd(),
			heterogeneousLookupCmd(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func hashmapRoundTripCmd() *cli.Command {
	return &cli.Command{
		Name:  "hashmap-roundtrip",
		Usage: "put/get/replace a small set of keys",
		Action: func(*cli.Context) error {
			m := hashmap.New[string, string](
				hook.WithHash[string](hook.HashString),
				hook.WithCompare[string](hook.CompareOrdered[string]),
			)
			m.Put("1", "1")
			m.Put("2", "2")

			v, _ := m.Get("1")
			dlog.D(*v)

			m.Put("3", "3")
			v, _ = m.Get("3")
			dlog.D(*v)

			m.Put("1", "not a 1")
			v, _ = m.Get("1")
			dlog.D(*v)

			v, ok := m.Get("1")
			dlog.D(*v, ok)

			_, ok = m.Get("345345")
			dlog.D(ok)
			return nil
		},
	}
}

func rehashCorrectnessCmd() *cli.Command {
	return &cli.Command{
		Name:  "rehash-correctness",
		Usage: "reserve, insert past the original capacity, delete most keys, shrink, and verify every remaining key survives",
		Action: func(*cli.Context) error {
			m := hashmap.New[int, int](hook.WithHash[int](hook.HashInt[int]), hook.WithCompare[int](hook.CompareOrdered[int]))
			m.Reserve(16)
			for i := 0; i < 10000; i++ {
				m.Put(i, i*i)
			}
			for i := 0; i < 9000; i++ {
				m.Delete(i)
			}
			m.Shrink()
			for i := 9000; i < 10000; i++ {
				v, ok := m.Get(i)
				if !ok || *v != i*i {
					return fmt.Errorf("lost key %d across rehash", i)
				}
			}
			dlog.D("rehash-correctness ok", m.Len(), m.Capacity())
			return nil
		},
	}
}

func orderedIterationCmd() *cli.Command {
	return &cli.Command{
		Name:  "ordered-iteration",
		Usage: "insert out of order, confirm ascending iteration and bounded range",
		Action: func(*cli.Context) error {
			m := orderedmap.New[int, string](hook.WithCompare[int](hook.CompareOrdered[int]))
			for _, k := range []int{50, 10, 30, 20, 40} {
				m.Put(k, fmt.Sprint(k))
			}
			m.Range(func(k int, v string) bool {
				dlog.D(k, v)
				return true
			})
			m.RangeBetween(15, 35, func(k int, v string) bool {
				dlog.D("in-range", k, v)
				return true
			})
			return nil
		},
	}
}

func formattedPushCmd() *cli.Command {
	return &cli.Command{
		Name:  "formatted-push",
		Usage: "build a string via push_fmt/insert_fmt direct concatenation (spec.md §8 scenario 5)",
		Action: func(*cli.Context) error {
			s := strbuf.NewByte()
			s.PushAll([]byte("The "))
			s.PushFmt(
				strbuf.StringArg("Hornet CB900F"),
				strbuf.StringArg(" is a motorcycle that was manufactured by "),
				strbuf.StringArg("Honda"),
				strbuf.StringArg(" from "),
				strbuf.IntArg(2002),
				strbuf.StringArg(" to "),
				strbuf.IntArg(2007),
				strbuf.StringArg(".\nIt makes "),
				strbuf.FloatArg(103.0),
				strbuf.StringArg("hp and "),
				strbuf.FloatArg(84.9),
				strbuf.StringArg("Nm of torque.\n"),
			)
			s.InsertFmt(17, strbuf.StringArg(", also known as the 919,"))
			s.Erase(108, 108+41)
			dlog.D(string(s.Data()))
			return nil
		},
	}
}

func heterogeneousLookupCmd() *cli.Command {
	return &cli.Command{
		Name:  "heterogeneous-lookup",
		Usage: "look up a string-keyed map from a raw []byte without allocating",
		Action: func(*cli.Context) error {
			m := hashmap.New[string, int](hook.WithHash[string](hook.HashString), hook.WithCompare[string](hook.CompareOrdered[string]))
			m.Put(strview.Own([]byte("alpha")), 1)

			raw := []byte("alpha")
			v, ok := m.Get(strview.Borrow(raw))
			dlog.D(ok, func() int {
				if v != nil {
					return *v
				}
				return -1
			}())
			return nil
		},
	}
}
