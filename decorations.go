package spirv

import (
	"fortio.org/safecast"

	"github.com/gogpu/spirv/inst"
)

// resolveDecorations expands decoration groups into direct per-target
// decorations and attaches every decoration to its id or struct member.
//
// Groups are an authoring convenience of the format, not a concept exposed
// to consumers: the returned bucket contains no DecorationGroup,
// GroupDecorate or GroupMemberDecorate instructions, and group ids are
// removed from the id table. Synthesized decorations follow the order of
// their group-decorate's target list, then the order decorations were
// declared within the group.
func (b *builder) resolveDecorations() []inst.Instruction {
	// group id -> decorations buffered for later per-target expansion.
	// Strictly local: discarded once resolution completes.
	groups := make(map[inst.Id][]inst.Instruction)

	out := make([]inst.Instruction, 0, len(b.decorations))
	for _, in := range b.decorations {
		switch v := in.(type) {
		case inst.Decorate:
			out = b.resolveDirect(groups, out, in, v.Target)
		case inst.DecorateId:
			out = b.resolveDirect(groups, out, in, v.Target)
		case inst.DecorateString:
			out = b.resolveDirect(groups, out, in, v.Target)

		case inst.MemberDecorate:
			// Groups cannot target individual members, so member
			// decorations always attach directly.
			b.attachMember(v.StructType, v.Member, in)
			out = append(out, in)
		case inst.MemberDecorateString:
			b.attachMember(v.StructType, v.Member, in)
			out = append(out, in)

		case inst.DecorationGroup:
			// The group id is not a real type or value and must not be
			// addressable after resolution.
			if _, ok := groups[v.Result]; !ok {
				groups[v.Result] = nil
			}
			delete(b.ids, v.Result)

		case inst.GroupDecorate:
			for _, target := range v.Targets {
				for _, dec := range groups[v.Group] {
					nd := retarget(dec, target)
					b.attach(target, nd)
					out = append(out, nd)
				}
			}

		case inst.GroupMemberDecorate:
			for _, target := range v.Targets {
				for _, dec := range groups[v.Group] {
					nd := retargetMember(dec, target)
					b.attachMember(target.Type, target.Member, nd)
					out = append(out, nd)
				}
			}
		}
	}
	return out
}

// resolveDirect handles a decorate instruction on an id: decorations on
// group ids are buffered for expansion, everything else attaches and is
// emitted as-is.
func (b *builder) resolveDirect(groups map[inst.Id][]inst.Instruction, out []inst.Instruction, in inst.Instruction, target inst.Id) []inst.Instruction {
	if _, ok := groups[target]; ok {
		groups[target] = append(groups[target], in)
		return out
	}
	if info, ok := b.ids[target]; ok {
		if _, isGroup := info.instruction.(inst.DecorationGroup); isGroup {
			groups[target] = append(groups[target], in)
			return out
		}
		info.decorations = append(info.decorations, in)
	}
	return append(out, in)
}

func (b *builder) attach(target inst.Id, in inst.Instruction) {
	if info, ok := b.ids[target]; ok {
		info.decorations = append(info.decorations, in)
	}
}

func (b *builder) attachMember(ty inst.Id, member uint32, in inst.Instruction) {
	info, ok := b.ids[ty]
	if !ok {
		return
	}
	if slot, ok := memberSlot(info, member); ok {
		slot.decorations = append(slot.decorations, in)
	}
}

func memberSlot(info *IdInfo, member uint32) (*StructMemberInfo, bool) {
	idx, err := safecast.Conv[int](member)
	if err != nil || idx >= len(info.members) {
		return nil, false
	}
	return &info.members[idx], true
}

// retarget instantiates a buffered group decoration for one target id.
func retarget(dec inst.Instruction, target inst.Id) inst.Instruction {
	switch d := dec.(type) {
	case inst.Decorate:
		d.Target = target
		return d
	case inst.DecorateId:
		d.Target = target
		return d
	case inst.DecorateString:
		d.Target = target
		return d
	default:
		// Only the three decorate forms above are ever buffered.
		panic("spirv: unreachable decoration kind in group expansion")
	}
}

// retargetMember instantiates a buffered group decoration for one struct
// member.
func retargetMember(dec inst.Instruction, target inst.MemberTarget) inst.Instruction {
	switch d := dec.(type) {
	case inst.Decorate:
		return inst.MemberDecorate{
			StructType: target.Type,
			Member:     target.Member,
			Decoration: d.Decoration,
			Operands:   d.Operands,
		}
	case inst.DecorateString:
		return inst.MemberDecorateString{
			StructType: target.Type,
			Member:     target.Member,
			Decoration: d.Decoration,
			Value:      d.Value,
		}
	case inst.DecorateId:
		panic("spirv: a DecorateId instruction targets a decoration group, " +
			"and that decoration group is applied using a GroupMemberDecorate " +
			"instruction, but there is no MemberDecorateId instruction")
	default:
		panic("spirv: unreachable decoration kind in group expansion")
	}
}
