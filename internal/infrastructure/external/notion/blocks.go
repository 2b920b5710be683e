package notion

import "github.com/jomei/notionapi"

// Notion caps a single rich text object at 2000 characters
const maxRichText = 2000

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: s}}}
}

func basic(kind notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: kind}
}

func heading(text string) notionapi.Block {
	return &notionapi.Heading2Block{
		BasicBlock: basic(notionapi.BlockTypeHeading2),
		Heading2:   notionapi.Heading{RichText: richText(text)},
	}
}

func bullet(text string) notionapi.Block {
	return &notionapi.BulletedListItemBlock{
		BasicBlock:       basic(notionapi.BlockTypeBulletedListItem),
		BulletedListItem: notionapi.ListItem{RichText: richText(text)},
	}
}

// paragraphs splits long text over as many paragraph blocks as needed
func paragraphs(text string) []notionapi.Block {
	chunks := chunkRunes(text, maxRichText)
	out := make([]notionapi.Block, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, &notionapi.ParagraphBlock{
			BasicBlock: basic(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: richText(c)},
		})
	}
	return out
}

func chunkRunes(s string, size int) []string {
	runes := []rune(s)
	if len(runes) <= size {
		return []string{s}
	}
	var out []string
	for len(runes) > 0 {
		n := size
		if len(runes) < n {
			n = len(runes)
		}
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return out
}
