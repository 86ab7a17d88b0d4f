package impshape_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/impshape"
	"github.com/toejough/impshape/match"
)

func TestSetupFunction_AddExample(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := impshape.NewMock("Calculator").Apply(
		impshape.SetupFunction("add", func(a, b int) int { return a + b }),
	)

	g.Expect(mock.Instance().Call("add", 2, 3)).To(Equal(5))
	g.Expect(impshape.GetLookup(mock, impshape.KindFunction)["add"]).To(Equal([]impshape.Record{{2, 3}}))
}

func TestSetupFunction_NoImplementationExample(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := impshape.NewMock("Shape").Apply(impshape.SetupFunction("f", nil))

	g.Expect(mock.Instance().Call("f", 1, 2)).To(BeNil())
	g.Expect(mock.Lookup(impshape.KindFunction)["f"]).To(match.HaveRecords([]any{1, 2}))
}

func TestDefineProperty_ReadTwiceWriteOnceExample(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := impshape.NewMock("Shape").Apply(
		impshape.DefineProperty("x", func() any { return 1 }, func(any) {}),
	)

	g.Expect(mock.Instance().Get("x")).To(Equal(1))
	g.Expect(mock.Instance().Get("x")).To(Equal(1))
	mock.Instance().Set("x", 7)

	g.Expect(mock.Lookup(impshape.KindGetter)["x"]).To(Equal([]impshape.Record{{}, {}}))
	g.Expect(mock.Lookup(impshape.KindSetter)["x"]).To(Equal([]impshape.Record{{7}}))
}

func TestSetupProperty_FixedValue(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		reads := rapid.IntRange(0, 20).Draw(rt, "reads")
		mock := impshape.NewMock("Shape").Apply(impshape.SetupProperty("x", 5))

		for range reads {
			if value := mock.Instance().Get("x"); value != 5 {
				rt.Fatalf("read returned %v", value)
			}
		}

		if got := len(mock.Lookup(impshape.KindGetter)["x"]); got != reads {
			rt.Fatalf("expected %d getter records, got %d", reads, got)
		}

		setter, ok := mock.Calls(impshape.KindSetter, "x")
		if !ok || len(setter) != 0 {
			rt.Fatalf("expected an empty setter slot, got %v (present=%v)", setter, ok)
		}
	})
}

func TestSetupFunction_RecordsEveryCallInOrder(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		calls := rapid.SliceOf(rapid.SliceOf(rapid.Int())).Draw(rt, "calls")
		mock := impshape.NewMock("Shape").Apply(impshape.SetupFunction("f", nil))

		expected := make([][]any, 0, len(calls))

		for _, call := range calls {
			args := make([]any, len(call))
			for i, arg := range call {
				args[i] = arg
			}

			mock.Instance().Call("f", args...)

			expected = append(expected, args)
		}

		ok, err := match.HaveRecords(expected...).Match(mock.Lookup(impshape.KindFunction)["f"])
		if err != nil || !ok {
			rt.Fatalf("records do not match calls %v: %v", calls, err)
		}
	})
}

func TestResetup_DiscardsRecords(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := impshape.NewMock("Shape").Apply(
		impshape.SetupFunction("f", nil),
		impshape.SetupProperty("p", 1),
	)

	mock.Instance().Call("f", 1)
	mock.Instance().Get("p")
	mock.Instance().Set("p", 2)

	mock.Apply(impshape.SetupFunction("f", nil), impshape.SetupProperty("p", 1))

	g.Expect(mock.Lookup(impshape.KindFunction)["f"]).To(match.HaveCallCount(0))
	g.Expect(mock.Lookup(impshape.KindGetter)["p"]).To(match.HaveCallCount(0))
	g.Expect(mock.Lookup(impshape.KindSetter)["p"]).To(match.HaveCallCount(0))
}

func TestStaticAndInstanceTablesAreIndependent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := impshape.NewMock("Shape").Apply(
		impshape.SetupStaticFunction("create", nil),
		impshape.SetupStaticProperty("version", "1"),
	)

	mock.Constructor().Call("create")
	mock.Constructor().Get("version")

	g.Expect(mock.Lookup(impshape.KindStaticFunction)["create"]).To(match.HaveCallCount(1))
	g.Expect(mock.Lookup(impshape.KindStaticGetter)["version"]).To(match.HaveCallCount(1))
	g.Expect(mock.Lookup(impshape.KindFunction)).NotTo(HaveKey("create"))
	g.Expect(mock.Lookup(impshape.KindGetter)).NotTo(HaveKey("version"))
	g.Expect(mock.Instance().Has("create")).To(BeFalse())
}

func TestSlotsAreAbsentUntilSetup(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := impshape.NewMock("Shape")

	for _, kind := range impshape.Kinds() {
		g.Expect(mock.Lookup(kind)).To(BeEmpty(), kind.String())
	}

	_, ok := mock.Calls(impshape.KindFunction, "f")
	g.Expect(ok).To(BeFalse())
}

func TestCompose_LaterSetupsOverrideEarlier(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	transform := impshape.Compose(
		impshape.SetupFunction("f", func() string { return "first" }),
		nil,
		impshape.SetupFunction("f", func() string { return "second" }),
	)

	mock := transform(impshape.NewMock("Shape"))

	g.Expect(mock.Instance().Call("f")).To(Equal("second"))
}

func TestNonCallableImplementationIsTolerated(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := impshape.NewMock("Shape").Apply(
		impshape.SetupFunction("f", 42),
		impshape.DefineProperty("p", "not a getter", "not a setter"),
	)

	g.Expect(mock.Instance().Call("f", "x")).To(BeNil())
	g.Expect(mock.Instance().Get("p")).To(BeNil())
	mock.Instance().Set("p", 3)

	g.Expect(mock.Lookup(impshape.KindFunction)["f"]).To(match.HaveRecords([]any{"x"}))
	g.Expect(mock.Lookup(impshape.KindSetter)["p"]).To(match.HaveRecords([]any{3}))
}

func TestTrackCall_CreatesMissingSlot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	table := impshape.Table{}
	impshape.TrackCall(table, "late", impshape.Record{"a"})

	g.Expect(table).To(HaveKeyWithValue("late", []impshape.Record{{"a"}}))
}
