package audit

// Category is one of the five 5S pillars. Each groups four questions.
type Category string

const (
	CategorySeiri    Category = "5S1" // Classificar
	CategorySeiton   Category = "5S2" // Organizar
	CategorySeiso    Category = "5S3" // Limpar
	CategorySeiketsu Category = "5S4" // Padronizar
	CategoryShitsuke Category = "5S5" // Disciplina
)

// Categories lists the pillars in audit-form order.
var Categories = []Category{
	CategorySeiri,
	CategorySeiton,
	CategorySeiso,
	CategorySeiketsu,
	CategoryShitsuke,
}

// CategoryNames maps each pillar to its display name (embedded locale strings).
var CategoryNames = map[Category]string{
	CategorySeiri:    "SEIRI - Classificar",
	CategorySeiton:   "SEITON - Organizar",
	CategorySeiso:    "SEISO - Limpar",
	CategorySeiketsu: "SEIKETSU - Padronizar",
	CategoryShitsuke: "SHITSUKE - Disciplina",
}

// Question is static reference data, never persisted.
type Question struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Text     string   `json:"question"`
	Weight   int      `json:"weight"`
}

// Questions is the fixed twenty-question taxonomy, four per pillar.
var Questions = []Question{
	{ID: "1", Category: CategorySeiri, Text: "Área está livre de itens desnecessários?", Weight: 1},
	{ID: "2", Category: CategorySeiri, Text: "Materiais obsoletos foram removidos?", Weight: 1},
	{ID: "3", Category: CategorySeiri, Text: "Existe identificação clara do que é necessário?", Weight: 1},
	{ID: "4", Category: CategorySeiri, Text: "Quantidade adequada de materiais no posto?", Weight: 1},

	{ID: "5", Category: CategorySeiton, Text: "Cada item tem um local específico definido?", Weight: 1},
	{ID: "6", Category: CategorySeiton, Text: "Locais estão claramente identificados?", Weight: 1},
	{ID: "7", Category: CategorySeiton, Text: "Itens são facilmente localizados?", Weight: 1},
	{ID: "8", Category: CategorySeiton, Text: "Layout facilita o fluxo de trabalho?", Weight: 1},

	{ID: "9", Category: CategorySeiso, Text: "Área está limpa e livre de sujeira?", Weight: 1},
	{ID: "10", Category: CategorySeiso, Text: "Equipamentos estão limpos?", Weight: 1},
	{ID: "11", Category: CategorySeiso, Text: "Existe rotina de limpeza estabelecida?", Weight: 1},
	{ID: "12", Category: CategorySeiso, Text: "Materiais de limpeza estão disponíveis?", Weight: 1},

	{ID: "13", Category: CategorySeiketsu, Text: "Padrões visuais estão implantados?", Weight: 1},
	{ID: "14", Category: CategorySeiketsu, Text: "Procedimentos estão documentados?", Weight: 1},
	{ID: "15", Category: CategorySeiketsu, Text: "Colaboradores conhecem os padrões?", Weight: 1},
	{ID: "16", Category: CategorySeiketsu, Text: "Padrões são seguidos consistentemente?", Weight: 1},

	{ID: "17", Category: CategoryShitsuke, Text: "Colaboradores seguem os 4S anteriores?", Weight: 1},
	{ID: "18", Category: CategoryShitsuke, Text: "Existe comprometimento da liderança?", Weight: 1},
	{ID: "19", Category: CategoryShitsuke, Text: "Melhorias são sugeridas pelos colaboradores?", Weight: 1},
	{ID: "20", Category: CategoryShitsuke, Text: "Existe cultura de melhoria contínua?", Weight: 1},
}

var questionsByID = func() map[string]Question {
	m := make(map[string]Question, len(Questions))
	for _, q := range Questions {
		m[q.ID] = q
	}
	return m
}()

// QuestionByID looks a question up in the fixed taxonomy.
func QuestionByID(id string) (Question, bool) {
	q, ok := questionsByID[id]
	return q, ok
}

// QuestionsFor returns the four questions of a pillar, in form order.
func QuestionsFor(c Category) []Question {
	out := make([]Question, 0, 4)
	for _, q := range Questions {
		if q.Category == c {
			out = append(out, q)
		}
	}
	return out
}
