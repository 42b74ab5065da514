package dto

// PageRequest paginação para listagens.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores padrão se Limit/Offset forem zero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SplitErrorResponse erro de validação da divisão manual: aponta o item que
// não confere e as quantidades esperada/recebida para a UI corrigir no lugar.
type SplitErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	NotaItemID string `json:"nota_item_id"`
	Produto    string `json:"produto"`
	Esperado   string `json:"esperado"`
	Recebido   string `json:"recebido"`
}
