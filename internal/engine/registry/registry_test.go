package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/modkit-dev/modkit/internal/core/domain"
	"github.com/modkit-dev/modkit/internal/core/ports/mocks"
	"github.com/modkit-dev/modkit/internal/engine/registry"
)

func strptr(s string) *string { return &s }

func damageKey(object string) domain.LocationKey {
	return domain.LocationKey{
		File:  "weapons/" + object + ".xml",
		Path:  "/weapon/properties/damage",
		Field: "value",
	}
}

func newWeapon(name, damage string) *domain.Object {
	obj := domain.NewObject(name)
	obj.AddItem(domain.NewSourceNode("damage", "Damage", damageKey(name), domain.SourceValues{
		Vanilla: strptr(damage),
		Patched: strptr(damage),
		Current: strptr(damage),
	}, false))
	return obj
}

func emptyPatches(t *testing.T) *mocks.MockPatchStore {
	t.Helper()
	patches := mocks.NewMockPatchStore(gomock.NewController(t))
	patches.EXPECT().Get(gomock.Any()).Return("", false).AnyTimes()
	return patches
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func TestAddObject_DuplicateFatal(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))

	require.NoError(t, r.AddObject(newWeapon("weapon_behemoth", "10")))
	err := r.AddObject(newWeapon("weapon_behemoth", "20"))
	assert.True(t, errors.Is(err, domain.ErrObjectAlreadyExists))
	assert.Equal(t, 1, r.Len())
}

func TestAddObject_AppliesPersistedDeltas(t *testing.T) {
	ctrl := gomock.NewController(t)
	patches := mocks.NewMockPatchStore(ctrl)
	key := damageKey("weapon_behemoth").String()
	patches.EXPECT().Get(key).Return("55", true)

	r := registry.New(patches, quietLogger(t))
	obj := newWeapon("weapon_behemoth", "10")
	require.NoError(t, r.AddObject(obj))

	node := obj.Item("damage")
	require.NotNil(t, node)
	got := node.Value(domain.EpochEdited)
	require.NotNil(t, got)
	assert.Equal(t, "55", *got)
}

func TestAddObject_SkipsReadOnlyDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	key := damageKey("weapon_behemoth")

	patches := mocks.NewMockPatchStore(ctrl)
	patches.EXPECT().Get(key.String()).Return("55", true)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).Times(1)

	obj := domain.NewObject("weapon_behemoth")
	obj.AddItem(domain.NewSourceNode("damage", "Damage", key, domain.SourceValues{
		Current: strptr("10"),
	}, true))

	r := registry.New(patches, log)
	require.NoError(t, r.AddObject(obj))

	got := obj.Item("damage").Value(domain.EpochEdited)
	require.NotNil(t, got)
	assert.Equal(t, "", *got, "edited stays at its initial value")
}

func TestObjectLookup(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	obj := newWeapon("weapon_behemoth", "10")
	require.NoError(t, r.AddObject(obj))

	assert.Same(t, obj, r.Object("weapon_behemoth"))
	assert.Nil(t, r.Object("weapon_ghost"))
}

func TestObjects_InsertionOrder(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	require.NoError(t, r.AddObject(newWeapon("weapon_c", "1")))
	require.NoError(t, r.AddObject(newWeapon("weapon_a", "2")))
	require.NoError(t, r.AddObject(newWeapon("weapon_b", "3")))

	var names []string
	for obj := range r.Objects() {
		names = append(names, obj.Name())
	}
	assert.Equal(t, []string{"weapon_c", "weapon_a", "weapon_b"}, names)
}

func TestAddDerived(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	obj := newWeapon("weapon_behemoth", "10")
	require.NoError(t, r.AddObject(obj))

	node, err := r.AddDerived("weapon_behemoth", "damage_doubled", "Damage x2",
		[]string{"damage"},
		func(args []*string) *string {
			if args[0] == nil {
				return nil
			}
			v := *args[0] + *args[0]
			return &v
		})
	require.NoError(t, err)
	require.NotNil(t, node)

	got := obj.Item("damage_doubled").Value(domain.EpochCurrent)
	require.NotNil(t, got)
	assert.Equal(t, "1010", *got)
}

func TestAddDerived_UnknownObject(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	_, err := r.AddDerived("weapon_ghost", "x", "X", nil, func([]*string) *string { return nil })
	assert.True(t, errors.Is(err, domain.ErrObjectNotFound))
}

func TestAddDerived_ResolvesThroughReferences(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))

	base := newWeapon("weapon_base", "7")
	require.NoError(t, r.AddObject(base))

	variant := domain.NewObject("weapon_variant")
	require.NoError(t, variant.AddReference(base))
	require.NoError(t, r.AddObject(variant))

	node, err := r.AddDerived("weapon_variant", "echo", "Echo", []string{"damage"},
		func(args []*string) *string { return args[0] })
	require.NoError(t, err)

	got := node.Value(domain.EpochCurrent)
	require.NotNil(t, got)
	assert.Equal(t, "7", *got, "dependency resolved via the referenced object")
}

func TestCategory_LazyBuildOnce(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	require.NoError(t, r.AddObject(newWeapon("weapon_behemoth", "10")))

	builds := 0
	r.RegisterCategory("weapons", func() (any, error) {
		builds++
		var names []string
		for obj := range r.Objects() {
			names = append(names, obj.Name())
		}
		return names, nil
	})

	first, err := r.Category("weapons")
	require.NoError(t, err)
	assert.Equal(t, []string{"weapon_behemoth"}, first)

	second, err := r.Category("weapons")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, builds, "builder runs once")
}

func TestCategory_UnknownIsNil(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	value, err := r.Category("missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestCategory_BuilderError(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	r.RegisterCategory("broken", func() (any, error) {
		return nil, errors.New("boom")
	})

	_, err := r.Category("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category build failed")
}

func TestEdits(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	obj := newWeapon("weapon_behemoth", "10")
	require.NoError(t, r.AddObject(obj))
	require.NoError(t, r.AddObject(newWeapon("weapon_base", "5")))

	node := obj.Item("damage").(*domain.SourceNode)
	require.NoError(t, node.SetValue(domain.EpochEdited, "42"))

	edits := r.Edits()
	require.Len(t, edits, 1)
	assert.Equal(t, damageKey("weapon_behemoth"), edits[0].Key)
	assert.Equal(t, "42", edits[0].Value)
}

func TestReset_KeepsPatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	key := damageKey("weapon_behemoth").String()

	patches := mocks.NewMockPatchStore(ctrl)
	patches.EXPECT().Get(key).Return("55", true).Times(2)

	r := registry.New(patches, quietLogger(t))
	require.NoError(t, r.AddObject(newWeapon("weapon_behemoth", "10")))

	r.Reset()
	assert.Equal(t, 0, r.Len())

	obj := newWeapon("weapon_behemoth", "10")
	require.NoError(t, r.AddObject(obj))
	got := obj.Item("damage").Value(domain.EpochEdited)
	require.NotNil(t, got)
	assert.Equal(t, "55", *got, "overlay survives a rebuild")
}

func TestReset_KeepsBuilders(t *testing.T) {
	r := registry.New(emptyPatches(t), quietLogger(t))
	require.NoError(t, r.AddObject(newWeapon("weapon_behemoth", "10")))

	builds := 0
	r.RegisterCategory("weapons", func() (any, error) {
		builds++
		var names []string
		for obj := range r.Objects() {
			names = append(names, obj.Name())
		}
		return names, nil
	})

	first, err := r.Category("weapons")
	require.NoError(t, err)
	assert.Equal(t, []string{"weapon_behemoth"}, first)

	r.Reset()
	require.NoError(t, r.AddObject(newWeapon("weapon_ghost", "3")))

	second, err := r.Category("weapons")
	require.NoError(t, err)
	assert.Equal(t, []string{"weapon_ghost"}, second, "builder registered at load time rebuilds over the new objects")
	assert.Equal(t, 2, builds, "built value is dropped, builder is not")
}

func TestSave_SyncsThenPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	patches := mocks.NewMockPatchStore(ctrl)
	patches.EXPECT().Get(gomock.Any()).Return("", false).AnyTimes()

	url := "mem://localhost/registry/edited_attributes.json"
	gomock.InOrder(
		patches.EXPECT().Sync(gomock.Any()),
		patches.EXPECT().Save(gomock.Any(), url).Return(nil),
	)

	r := registry.New(patches, quietLogger(t))
	require.NoError(t, r.AddObject(newWeapon("weapon_behemoth", "10")))
	require.NoError(t, r.Save(context.Background(), url))
}
