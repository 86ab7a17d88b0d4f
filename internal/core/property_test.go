package core_test

import (
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/impshape/internal/core"
)

func TestDefineProperty_RecordsReadsAndWrites(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var written []any

	mock := core.NewMock("Shape").Apply(
		core.DefineProperty("x", func() any { return 1 }, func(v any) { written = append(written, v) }),
	)

	g.Expect(mock.Instance().Get("x")).To(Equal(1))
	g.Expect(mock.Instance().Get("x")).To(Equal(1))
	mock.Instance().Set("x", 7)

	g.Expect(mock.Lookup(core.KindGetter)["x"]).To(Equal([]core.Record{{}, {}}))
	g.Expect(mock.Lookup(core.KindSetter)["x"]).To(Equal([]core.Record{{7}}))
	g.Expect(written).To(Equal([]any{7}))
}

func TestDefineProperty_WithoutGetterReadsNil(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape").Apply(core.DefineProperty("x", nil, nil))

	g.Expect(mock.Instance().Get("x")).To(BeNil())
	g.Expect(mock.Lookup(core.KindGetter)["x"]).To(HaveLen(1))
}

func TestDefineProperty_CreatesBothSlots(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape").Apply(core.DefineProperty("x", func() any { return 1 }, nil))

	getterRecords, getterOK := mock.Calls(core.KindGetter, "x")
	setterRecords, setterOK := mock.Calls(core.KindSetter, "x")

	g.Expect(getterOK).To(BeTrue())
	g.Expect(setterOK).To(BeTrue())
	g.Expect(getterRecords).To(BeEmpty())
	g.Expect(setterRecords).To(BeEmpty())
}

func TestDefineProperty_WriteWithoutSetterIsRecordedOnly(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape").Apply(core.DefineProperty("x", func() any { return 1 }, nil))

	mock.Instance().Set("x", 5)

	g.Expect(mock.Instance().Get("x")).To(Equal(1), "write must not replace the accessor")
	g.Expect(mock.Instance().Kind("x")).To(Equal(core.MemberAccessor))
	g.Expect(mock.Lookup(core.KindSetter)["x"]).To(Equal([]core.Record{{5}}))
}

func TestDefineProperty_RedefineWithoutSetterDropsOldSetter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	setterCalls := 0

	mock := core.NewMock("Shape").Apply(
		core.DefineProperty("x", nil, func(any) { setterCalls++ }),
	)
	mock.Instance().Set("x", 1)

	mock.Apply(core.DefineProperty("x", nil, nil))
	mock.Instance().Set("x", 2)

	g.Expect(setterCalls).To(Equal(1))
	g.Expect(mock.Lookup(core.KindSetter)["x"]).To(Equal([]core.Record{{2}}), "redefinition resets the slot")
}

func TestDefineProperty_GetterAndSetterAreBoundToTarget(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape")
	mock.Instance().DefineValue("backing", 0)

	mock.Apply(core.DefineProperty(
		"x",
		func(this *core.Object) int { return this.Get("backing").(int) },
		func(this *core.Object, v int) { this.Set("backing", v) },
	))

	mock.Instance().Set("x", 9)

	g.Expect(mock.Instance().Get("x")).To(Equal(9))
	g.Expect(mock.Lookup(core.KindSetter)["x"]).To(Equal([]core.Record{{9}}))
}

func TestDefineProperty_OverwritesExistingMember(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape").Apply(
		core.SetupFunction("x", nil),
		core.SetupProperty("x", "now a property"),
	)

	g.Expect(mock.Instance().Kind("x")).To(Equal(core.MemberAccessor))
	g.Expect(mock.Instance().Get("x")).To(Equal("now a property"))
}

func TestSetupProperty_FixedValue(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape").Apply(core.SetupProperty("x", 5))

	for range 3 {
		g.Expect(mock.Instance().Get("x")).To(Equal(5))
	}

	g.Expect(mock.Lookup(core.KindGetter)["x"]).To(HaveLen(3))
	g.Expect(mock.Lookup(core.KindSetter)["x"]).To(BeEmpty())
}

func TestSetupProperty_OmittedValueReadsNil(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape").Apply(core.SetupProperty("x", nil))

	g.Expect(mock.Instance().Get("x")).To(BeNil())
}

func TestSetupProperty_FuncValueIsReturnedNotCalled(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	called := false
	callback := func() any {
		called = true

		return "result"
	}

	mock := core.NewMock("Shape").Apply(core.SetupProperty("callback", callback))

	got := mock.Instance().Get("callback")

	g.Expect(called).To(BeFalse())
	g.Expect(got).To(BeAssignableToTypeOf(callback))
}

func TestSetupStaticProperty_IndependentOfInstance(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape").Apply(
		core.SetupProperty("version", "instance"),
		core.SetupStaticProperty("version", "static"),
	)

	g.Expect(mock.Instance().Get("version")).To(Equal("instance"))
	g.Expect(mock.Constructor().Get("version")).To(Equal("static"))
	mock.Constructor().Set("version", "v2")

	g.Expect(mock.Lookup(core.KindGetter)["version"]).To(HaveLen(1))
	g.Expect(mock.Lookup(core.KindSetter)["version"]).To(BeEmpty())
	g.Expect(mock.Lookup(core.KindStaticGetter)["version"]).To(HaveLen(1))
	g.Expect(mock.Lookup(core.KindStaticSetter)["version"]).To(Equal([]core.Record{{"v2"}}))
}

func TestDefineStaticProperty_UsesStaticTables(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := core.NewMock("Shape").Apply(core.DefineStaticProperty("count", func() any { return 3 }, nil))

	g.Expect(mock.Constructor().Get("count")).To(Equal(3))
	g.Expect(mock.Instance().Has("count")).To(BeFalse())
	g.Expect(mock.Lookup(core.KindStaticGetter)["count"]).To(HaveLen(1))
	g.Expect(mock.Lookup(core.KindGetter)).NotTo(HaveKey("count"))
	g.Expect(mock.Lookup(core.KindSetter)).NotTo(HaveKey("count"))

	_, ok := mock.Calls(core.KindStaticSetter, "count")
	g.Expect(ok).To(BeTrue())
}

// TestDefineProperty_ReadsThenWrite_Property proves M reads and one write of v yield
// M empty getter records and a single [v] setter record.
func TestDefineProperty_ReadsThenWrite_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		reads := rapid.IntRange(0, 25).Draw(rt, "reads")
		value := rapid.String().Draw(rt, "value")
		static := rapid.Bool().Draw(rt, "static")

		transform := core.DefineProperty("p", func() any { return "g" }, func(any) {})
		getterKind := core.KindGetter

		if static {
			transform = core.DefineStaticProperty("p", func() any { return "g" }, func(any) {})
			getterKind = core.KindStaticGetter
		}

		mock := core.NewMock("Shape").Apply(transform)

		target := mock.Instance()
		if static {
			target = mock.Constructor()
		}

		for range reads {
			target.Get("p")
		}

		target.Set("p", value)

		getterRecords := mock.Lookup(getterKind)["p"]
		if len(getterRecords) != reads {
			rt.Fatalf("expected %d getter records, got %d", reads, len(getterRecords))
		}

		for i, record := range getterRecords {
			if len(record) != 0 {
				rt.Fatalf("getter record %d should be empty, got %v", i, record)
			}
		}

		setterRecords := mock.Lookup(getterKind.Setter())["p"]
		if len(setterRecords) != 1 || len(setterRecords[0]) != 1 || setterRecords[0][0] != value {
			rt.Fatalf("expected setter records [[%q]], got %v", value, setterRecords)
		}

		for _, other := range core.Kinds() {
			if other == getterKind || other == getterKind.Setter() {
				continue
			}

			if _, ok := mock.Calls(other, "p"); ok {
				rt.Fatalf("kind %s should not have a slot for p", other)
			}
		}
	})
}
