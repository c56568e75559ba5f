package businessflow

import (
	"fmt"
	"html"
)

// Email templates. All user-provided values are HTML-escaped before
// interpolation.

func welcomeEmailTemplate(nome, tipoConta string) (subject, body string) {
	nome = html.EscapeString(nome)

	switch tipoConta {
	case "empresa":
		subject = "Bem-vindo ao Saj Tem - Sua empresa em destaque!"
		body = fmt.Sprintf(`
			<h2>Olá, %s!</h2>
			<p>Seja bem-vindo ao <strong>Saj Tem</strong>.</p>
			<p>Sua conta de empresa foi criada com sucesso. Agora você pode cadastrar seu negócio e alcançar mais clientes na região.</p>
			<p>Nossa equipe analisará seu cadastro em breve.</p>
			<p>Equipe Saj Tem</p>`, nome)
	case "organizador":
		subject = "Bem-vindo ao Saj Tem - Divulgue seus eventos!"
		body = fmt.Sprintf(`
			<h2>Olá, %s!</h2>
			<p>Seja bem-vindo ao <strong>Saj Tem</strong>.</p>
			<p>Sua conta de organizador foi criada com sucesso. Cadastre seus eventos e alcance todo o público da cidade.</p>
			<p>Equipe Saj Tem</p>`, nome)
	default:
		subject = "Bem-vindo ao Saj Tem!"
		body = fmt.Sprintf(`
			<h2>Olá, %s!</h2>
			<p>Seja bem-vindo ao <strong>Saj Tem</strong>.</p>
			<p>Sua conta foi criada com sucesso. Explore empresas, eventos e novidades da sua cidade.</p>
			<p>Equipe Saj Tem</p>`, nome)
	}
	return subject, body
}

func internalSignupTemplate(nome, email, tipoConta string) (subject, body string) {
	if tipoConta == "" {
		tipoConta = "padrão"
	}
	subject = "Novo cadastro no Saj Tem"
	body = fmt.Sprintf(`
		<h3>Novo cadastro</h3>
		<p><strong>Nome:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Tipo de conta:</strong> %s</p>`,
		html.EscapeString(nome), html.EscapeString(email), html.EscapeString(tipoConta))
	return subject, body
}

func empresaNotificationTemplate(nomeEmpresa, status string, observacoes *string) (subject, body string) {
	nomeEmpresa = html.EscapeString(nomeEmpresa)

	if status == "aprovado" {
		subject = fmt.Sprintf("Saj Tem - %s foi aprovada!", nomeEmpresa)
		body = fmt.Sprintf(`
			<h2>Parabéns!</h2>
			<p>A empresa <strong>%s</strong> foi aprovada e já está visível no Saj Tem.</p>`, nomeEmpresa)
	} else {
		subject = fmt.Sprintf("Saj Tem - Cadastro de %s não aprovado", nomeEmpresa)
		body = fmt.Sprintf(`
			<h2>Cadastro não aprovado</h2>
			<p>Infelizmente o cadastro da empresa <strong>%s</strong> não foi aprovado desta vez.</p>`, nomeEmpresa)
	}
	if observacoes != nil && *observacoes != "" {
		body += fmt.Sprintf(`<p><strong>Observações:</strong> %s</p>`, html.EscapeString(*observacoes))
	}
	body += `<p>Equipe Saj Tem</p>`
	return subject, body
}

func eventoNotificationTemplate(nomeEvento, status string, dataEvento, local, observacoes *string) (subject, body string) {
	nomeEvento = html.EscapeString(nomeEvento)

	if status == "aprovado" {
		subject = fmt.Sprintf("Saj Tem - Evento %s aprovado!", nomeEvento)
		body = fmt.Sprintf(`
			<h2>Evento aprovado!</h2>
			<p>O evento <strong>%s</strong> foi aprovado e já está divulgado no Saj Tem.</p>`, nomeEvento)
	} else {
		subject = fmt.Sprintf("Saj Tem - Evento %s não aprovado", nomeEvento)
		body = fmt.Sprintf(`
			<h2>Evento não aprovado</h2>
			<p>Infelizmente o evento <strong>%s</strong> não foi aprovado desta vez.</p>`, nomeEvento)
	}
	if dataEvento != nil && *dataEvento != "" {
		body += fmt.Sprintf(`<p><strong>Data:</strong> %s</p>`, html.EscapeString(*dataEvento))
	}
	if local != nil && *local != "" {
		body += fmt.Sprintf(`<p><strong>Local:</strong> %s</p>`, html.EscapeString(*local))
	}
	if observacoes != nil && *observacoes != "" {
		body += fmt.Sprintf(`<p><strong>Observações:</strong> %s</p>`, html.EscapeString(*observacoes))
	}
	body += `<p>Equipe Saj Tem</p>`
	return subject, body
}

func contactRelayTemplate(nome, email, assunto, mensagem string) (subject, body string) {
	subject = fmt.Sprintf("Contato via site: %s", html.EscapeString(assunto))
	body = fmt.Sprintf(`
		<h3>Nova mensagem de contato</h3>
		<p><strong>Nome:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Assunto:</strong> %s</p>
		<p><strong>Mensagem:</strong></p>
		<p>%s</p>`,
		html.EscapeString(nome), html.EscapeString(email),
		html.EscapeString(assunto), html.EscapeString(mensagem))
	return subject, body
}

func contactAckTemplate(nome string) (subject, body string) {
	subject = "Saj Tem - Recebemos sua mensagem"
	body = fmt.Sprintf(`
		<h2>Olá, %s!</h2>
		<p>Recebemos sua mensagem e responderemos o quanto antes.</p>
		<p>Equipe Saj Tem</p>`, html.EscapeString(nome))
	return subject, body
}
