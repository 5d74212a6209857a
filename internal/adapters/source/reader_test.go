package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/hiredw/internal/adapters/source"
	"github.com/okian/hiredw/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const header = "First Name;Last Name;Email;Country;Application Date;YOE;Code Challenge Score;Technical Interview Score;Seniority;Technology\n"

func TestReader_Read(t *testing.T) {
	Convey("Given a semicolon-delimited candidate file", t, func() {
		r := source.NewReader()
		input := header +
			"Ada;Lovelace;ada@x.io;USA;2021-03-07;4;8;9;Senior;Go\n" +
			"\n" +
			"Alan;Turing;alan@x.io;uk;2020-01-05;12;;7;Lead\n"

		Convey("When it is read", func() {
			rows, err := r.Read(context.Background(), strings.NewReader(input))

			Convey("Then rows are keyed by folded header with source lines", func() {
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 2)
				So(rows[0].Line, ShouldEqual, 2)
				So(rows[0].Fields[model.ColFirstName], ShouldEqual, "Ada")
				So(rows[0].Fields[model.ColTechnology], ShouldEqual, "Go")
				So(rows[1].Line, ShouldEqual, 4)
				So(rows[1].Fields[model.ColCodeChallenge], ShouldEqual, "")
			})

			Convey("Then short rows pad missing fields with blanks", func() {
				v, ok := rows[1].Fields[model.ColTechnology]
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "")
			})
		})

		Convey("When the header starts with a byte order mark", func() {
			rows, err := r.Read(context.Background(), strings.NewReader("\ufeff"+header+"a;b;c;d;e;1;2;3;s;t\n"))
			So(err, ShouldBeNil)
			So(rows[0].Fields[model.ColFirstName], ShouldEqual, "a")
		})

		Convey("When a required column is absent", func() {
			bad := strings.Replace(header, ";Technology", "", 1)
			_, err := r.Read(context.Background(), strings.NewReader(bad))

			Convey("Then ErrMissingColumn names it", func() {
				So(errors.Is(err, source.ErrMissingColumn), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "technology")
			})
		})

		Convey("When the input is empty", func() {
			_, err := r.Read(context.Background(), strings.NewReader(""))
			So(errors.Is(err, source.ErrMissingColumn), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := r.Read(ctx, strings.NewReader(header+"a;b;c;d;e;1;2;3;s;t\n"))
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given a comma-delimited reader", t, func() {
		r := source.NewReader(source.WithDelimiter(','))
		input := strings.ReplaceAll(header, ";", ",") + "a,b,c,d,e,1,2,3,s,t\n"
		rows, err := r.Read(context.Background(), strings.NewReader(input))
		So(err, ShouldBeNil)
		So(rows[0].Fields[model.ColTechInterview], ShouldEqual, "3")
	})
}

func TestReader_ReadFile(t *testing.T) {
	Convey("Given files on disk", t, func() {
		r := source.NewReader()

		Convey("When the file does not exist", func() {
			_, err := r.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
			So(errors.Is(err, source.ErrInputNotFound), ShouldBeTrue)
		})

		Convey("When the file exists", func() {
			path := filepath.Join(t.TempDir(), "candidates.csv")
			So(os.WriteFile(path, []byte(header+"a;b;c;d;e;1;2;3;s;t\n"), 0o600), ShouldBeNil)
			rows, err := r.ReadFile(context.Background(), path)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 1)
		})
	})
}
